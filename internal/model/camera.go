package model

import (
	"github.com/shopspring/decimal"
)

// Camera statuses.
const (
	CameraStatusActive   = "active"
	CameraStatusInactive = "inactive"
	CameraStatusProblem  = "problem"
)

// Camera is the operational view served by /cameras.
type Camera struct {
	Base
	Name       string          `json:"name"`
	Address    string          `json:"address"`
	Status     string          `json:"status"`
	Owner      string          `json:"owner"`
	Lat        *float64        `json:"lat"`
	Lng        *float64        `json:"lng"`
	Resolution string          `json:"resolution"`
	FPS        int             `json:"fps"`
	Traffic    decimal.Decimal `json:"traffic"`
	GroupIDs   []int64         `json:"group_ids"`
	TagIDs     []int64         `json:"tag_ids"`
}

// CameraFilter holds the optional GET /cameras query parameters.
type CameraFilter struct {
	ID     int64  `query:"id" validate:"gte=0"`
	Status string `query:"status"`
	Owner  string `query:"owner"`
	Search string `query:"search"`
}

func (f *CameraFilter) Validate() error {
	return validate(f)
}

type CreateCameraRequest struct {
	Name       string           `json:"name" validate:"required"`
	Address    string           `json:"address" validate:"required"`
	Owner      string           `json:"owner" validate:"required"`
	Lat        *float64         `json:"lat" validate:"required,latitude"`
	Lng        *float64         `json:"lng" validate:"required,longitude"`
	Status     string           `json:"status" validate:"omitempty,oneof=active inactive problem"`
	Resolution string           `json:"resolution"`
	FPS        *int             `json:"fps" validate:"omitempty,gte=0"`
	Traffic    *decimal.Decimal `json:"traffic"`
	GroupIDs   []int64          `json:"group_ids" validate:"dive,gt=0"`
	TagIDs     []int64          `json:"tag_ids" validate:"dive,gt=0"`
}

func (r *CreateCameraRequest) Validate() error {
	if r.Status == "" {
		r.Status = CameraStatusInactive
	}
	if r.Resolution == "" {
		r.Resolution = "1920x1080"
	}
	if r.FPS == nil {
		fps := 25
		r.FPS = &fps
	}
	if r.Traffic == nil {
		zero := decimal.Zero
		r.Traffic = &zero
	}
	return validate(r)
}

type UpdateCameraRequest struct {
	ID         int64                     `query:"id" json:"id" validate:"required,gt=0"`
	Name       Optional[string]          `json:"name,omitzero"`
	Address    Optional[string]          `json:"address,omitzero"`
	Status     Optional[string]          `json:"status,omitzero"`
	Owner      Optional[string]          `json:"owner,omitzero"`
	Lat        Optional[float64]         `json:"lat,omitzero"`
	Lng        Optional[float64]         `json:"lng,omitzero"`
	Resolution Optional[string]          `json:"resolution,omitzero"`
	FPS        Optional[int]             `json:"fps,omitzero"`
	Traffic    Optional[decimal.Decimal] `json:"traffic,omitzero"`
	GroupIDs   Optional[[]int64]         `json:"group_ids,omitzero"`
	TagIDs     Optional[[]int64]         `json:"tag_ids,omitzero"`
}

func (r *UpdateCameraRequest) Validate() error {
	if err := validate(r); err != nil {
		return err
	}
	if s, ok := r.Status.Get(); ok {
		switch s {
		case CameraStatusActive, CameraStatusInactive, CameraStatusProblem:
		default:
			return invalidStatusError()
		}
	}
	return requireNonEmpty("name", r.Name)
}

// HasChanges reports whether any updatable field was sent.
func (r *UpdateCameraRequest) HasChanges() bool {
	return r.Name.Set || r.Address.Set || r.Status.Set || r.Owner.Set ||
		r.Lat.Set || r.Lng.Set || r.Resolution.Set || r.FPS.Set ||
		r.Traffic.Set || r.GroupIDs.Set || r.TagIDs.Set
}

// RegistryCamera is the inventory view served by /camera-registry.
// Stream and PTZ credentials are write-only.
type RegistryCamera struct {
	Base
	Name                string   `json:"name"`
	RTSPURL             string   `json:"rtsp_url"`
	ModelID             *int64   `json:"model_id"`
	Manufacturer        *string  `json:"manufacturer"`
	ModelName           *string  `json:"model_name"`
	PTZIP               *string  `json:"ptz_ip"`
	PTZPort             *int     `json:"ptz_port"`
	Owner               string   `json:"owner"`
	Address             string   `json:"address"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	TerritorialDivision string   `json:"territorial_division"`
	ArchiveDepthDays    int      `json:"archive_depth_days"`
	Description         string   `json:"description"`
	Status              string   `json:"status"`
	GroupIDs            []int64  `json:"group_ids"`
	TagIDs              []int64  `json:"tag_ids"`
}

type CreateRegistryCameraRequest struct {
	Name                string   `json:"name" validate:"required"`
	RTSPURL             string   `json:"rtsp_url" validate:"required"`
	RTSPLogin           *string  `json:"rtsp_login"`
	RTSPPassword        *string  `json:"rtsp_password"`
	ModelID             *int64   `json:"model_id"`
	PTZIP               *string  `json:"ptz_ip"`
	PTZPort             *int     `json:"ptz_port" validate:"omitempty,gte=1,lte=65535"`
	PTZLogin            *string  `json:"ptz_login"`
	PTZPassword         *string  `json:"ptz_password"`
	Owner               string   `json:"owner"`
	Address             string   `json:"address"`
	Latitude            *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude           *float64 `json:"longitude" validate:"omitempty,longitude"`
	TerritorialDivision string   `json:"territorial_division"`
	ArchiveDepthDays    *int     `json:"archive_depth_days" validate:"omitempty,gte=0"`
	Description         string   `json:"description"`
	Status              string   `json:"status" validate:"omitempty,oneof=active inactive problem"`
	GroupIDs            []int64  `json:"group_ids" validate:"dive,gt=0"`
	TagIDs              []int64  `json:"tag_ids" validate:"dive,gt=0"`
}

func (r *CreateRegistryCameraRequest) Validate() error {
	// Registered cameras start out active.
	if r.Status == "" {
		r.Status = CameraStatusActive
	}
	if r.ArchiveDepthDays == nil {
		days := 30
		r.ArchiveDepthDays = &days
	}
	return validate(r)
}

type UpdateRegistryCameraRequest struct {
	ID                  int64             `query:"id" json:"id" validate:"required,gt=0"`
	Name                Optional[string]  `json:"name,omitzero"`
	RTSPURL             Optional[string]  `json:"rtsp_url,omitzero"`
	RTSPLogin           Optional[string]  `json:"rtsp_login,omitzero"`
	RTSPPassword        Optional[string]  `json:"rtsp_password,omitzero"`
	ModelID             Optional[int64]   `json:"model_id,omitzero"`
	PTZIP               Optional[string]  `json:"ptz_ip,omitzero"`
	PTZPort             Optional[int]     `json:"ptz_port,omitzero"`
	PTZLogin            Optional[string]  `json:"ptz_login,omitzero"`
	PTZPassword         Optional[string]  `json:"ptz_password,omitzero"`
	Owner               Optional[string]  `json:"owner,omitzero"`
	Address             Optional[string]  `json:"address,omitzero"`
	Latitude            Optional[float64] `json:"latitude,omitzero"`
	Longitude           Optional[float64] `json:"longitude,omitzero"`
	TerritorialDivision Optional[string]  `json:"territorial_division,omitzero"`
	ArchiveDepthDays    Optional[int]     `json:"archive_depth_days,omitzero"`
	Description         Optional[string]  `json:"description,omitzero"`
	Status              Optional[string]  `json:"status,omitzero"`
	GroupIDs            Optional[[]int64] `json:"group_ids,omitzero"`
	TagIDs              Optional[[]int64] `json:"tag_ids,omitzero"`
}

func (r *UpdateRegistryCameraRequest) Validate() error {
	if err := validate(r); err != nil {
		return err
	}
	if s, ok := r.Status.Get(); ok {
		switch s {
		case CameraStatusActive, CameraStatusInactive, CameraStatusProblem:
		default:
			return invalidStatusError()
		}
	}
	return firstError(
		requireNonEmpty("name", r.Name),
		requireNonEmpty("rtsp_url", r.RTSPURL),
	)
}

// CameraStats aggregates the camera table for dashboards.
type CameraStats struct {
	Total        int64        `json:"total"`
	Active       int64        `json:"active"`
	Inactive     int64        `json:"inactive"`
	Problem      int64        `json:"problem"`
	TotalTraffic float64      `json:"total_traffic"`
	AvgFPS       float64      `json:"avg_fps"`
	ByOwner      []OwnerCount `json:"by_owner"`
	ByGroup      []GroupCount `json:"by_group"`
}

type OwnerCount struct {
	Owner string `json:"owner"`
	Count int64  `json:"count"`
}

type GroupCount struct {
	Group string `json:"group"`
	Count int64  `json:"count"`
}
