package dto

import "taskdeck/pkg/optional"

type CreateLabelRequest struct {
	Name     string `json:"name"`
	ColorHex string `json:"color_hex"`
}

type UpdateLabelRequest struct {
	Name     optional.Option[string] `json:"name"`
	ColorHex optional.Option[string] `json:"color_hex"`
}
