package web

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin/render"
)

// HTMLRenderer lets gin render templ components through ctx.HTML(status, "", component).
type HTMLRenderer struct {
	Fallback render.HTMLRender
}

func (r *HTMLRenderer) Instance(name string, data any) render.Render {
	component, ok := data.(templ.Component)
	if !ok && r.Fallback != nil {
		return r.Fallback.Instance(name, data)
	}
	return &Renderer{
		Ctx:       context.Background(),
		Status:    -1,
		Component: component,
	}
}

// Renderer writes a single component. gin has already written the status when Status is -1.
type Renderer struct {
	Ctx       context.Context
	Status    int
	Component templ.Component
}

func (t Renderer) Render(w http.ResponseWriter) error {
	t.WriteContentType(w)
	if t.Status != -1 {
		w.WriteHeader(t.Status)
	}
	if t.Component != nil {
		return t.Component.Render(t.Ctx, w)
	}
	return nil
}

func (t Renderer) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}
