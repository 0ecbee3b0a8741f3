package api

import "github.com/raye/pagesmith/server/internal/compose"

type ConnectRequest struct {
	OrganizationID string `json:"organizationId"`
	Token          string `json:"token"`
}

type PublishRequest struct {
	OrganizationID string                  `json:"organizationId"`
	App            compose.AppMeta         `json:"app"`
	Private        bool                    `json:"private"`
	Files          []compose.GeneratedFile `json:"files"`
	Scaffold       []compose.ScaffoldFile  `json:"scaffold,omitempty"`
	Message        string                  `json:"message,omitempty"`
}
