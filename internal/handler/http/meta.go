package http

import (
	"net/http"

	"github.com/aleenavigoda/yardso-sub000/internal/fixtures"
	"github.com/aleenavigoda/yardso-sub000/internal/handler/http/response"
)

type MetaHandler interface {
	ServiceTypes(w http.ResponseWriter, r *http.Request)
}

type MetaHandlerImpl struct{}

// ServiceTypeResponse is one autocomplete entry for the compose forms
type ServiceTypeResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ServiceTypes implements MetaHandler.
func (h *MetaHandlerImpl) ServiceTypes(w http.ResponseWriter, r *http.Request) {
	types := fixtures.GetDefaultServiceTypes()
	result := make([]ServiceTypeResponse, 0, len(types))
	for _, t := range types {
		result = append(result, ServiceTypeResponse{
			Code:        t.Code,
			Name:        t.Name,
			Description: t.Description,
		})
	}

	response.Success(w, result)
}

func NewMetaHandler() MetaHandler {
	return &MetaHandlerImpl{}
}
