// Package lib holds modules that do not fit strictly into one layer:
// background jobs on asynq, the Resend email client, password hashing and
// small shared utilities.
package lib
