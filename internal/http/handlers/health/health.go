package health

import (
	"net/http"
	"passreset/internal/http/handlers/response"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

type Result struct {
	Message string `json:"message"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	response.Render(rw, Result{Message: "Auth API is running and healthy!"}, http.StatusOK)
}
