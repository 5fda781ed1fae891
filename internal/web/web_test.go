package web

import (
	"bytes"
	"context"
	"errors"
	"grammable/internal/models"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, component templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, component.Render(context.Background(), &buf))
	return buf.String()
}

func sampleGram(ownerID uint, picture string) *models.GramResponse {
	gram := &models.GramResponse{
		ID:        7,
		Message:   "<script>alert('hi')</script>",
		User:      &models.UserResponse{ID: ownerID, Email: "owner@example.com"},
		CreatedAt: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		Comments: []*models.CommentResponse{
			{ID: 1, GramID: 7, Message: "nice & shiny", User: &models.UserResponse{ID: 2, Email: "fan@example.com"}},
		},
	}
	if picture != "" {
		gram.Picture = &picture
	}
	return gram
}

func TestGramCardEscapesUserContent(t *testing.T) {
	html := renderString(t, GramCard(sampleGram(1, "/uploads/grams/a.png")))

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;alert(&#39;hi&#39;)&lt;/script&gt;")
	assert.Contains(t, html, "nice &amp; shiny")
	assert.Contains(t, html, `<img src="/uploads/grams/a.png"`)
	assert.Contains(t, html, `id="gram-7"`)
	assert.Contains(t, html, "May 1, 2024 10:30")
}

func TestGramCardSanitizesPictureURL(t *testing.T) {
	html := renderString(t, GramCard(sampleGram(1, "javascript:alert(1)")))

	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, "about:invalid#TemplFailedSanitizationURL")
}

func TestGramsShowOwnerControls(t *testing.T) {
	tests := []struct {
		name        string
		page        Page
		wantEdit    bool
		wantComment bool
	}{
		{name: "anonymous", page: Page{}, wantEdit: false, wantComment: false},
		{name: "other user", page: Page{SignedIn: true, UserID: 2, Email: "fan@example.com"}, wantEdit: false, wantComment: true},
		{name: "owner", page: Page{SignedIn: true, UserID: 1, Email: "owner@example.com"}, wantEdit: true, wantComment: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := renderString(t, GramsShow(tt.page, sampleGram(1, "")))

			assert.Equal(t, tt.wantEdit, bytes.Contains([]byte(html), []byte(`href="/grams/7/edit"`)))
			assert.Equal(t, tt.wantComment, bytes.Contains([]byte(html), []byte(`action="/grams/7/comments"`)))
		})
	}
}

func TestLayoutShowsSession(t *testing.T) {
	anonymous := renderString(t, SignIn(Page{Title: "Sign in"}, ""))
	assert.Contains(t, anonymous, "<title>Sign in | Grammable</title>")
	assert.Contains(t, anonymous, `href="/users/sign_up"`)
	assert.NotContains(t, anonymous, "Sign out")

	signedIn := renderString(t, GramsNew(Page{Title: "New Gram", SignedIn: true, UserID: 1, Email: "a&b@example.com"}, ""))
	assert.Contains(t, signedIn, "a&amp;b@example.com")
	assert.Contains(t, signedIn, `name="_method" value="delete"`)
	assert.Contains(t, signedIn, `enctype="multipart/form-data"`)
}

func TestFormsKeepSubmittedValuesAndErrors(t *testing.T) {
	page := Page{Title: "Sign up", Errors: []error{errors.New("email has already been taken")}}
	html := renderString(t, SignUp(page, `"quoted"@example.com`))

	assert.Contains(t, html, `<ul class="errors"><li>email has already been taken</li></ul>`)
	assert.Contains(t, html, `value="&#34;quoted&#34;@example.com"`)

	edit := renderString(t, GramsEdit(Page{SignedIn: true, UserID: 1}, sampleGram(1, ""), "new </textarea> text"))
	assert.Contains(t, edit, `action="/grams/7"`)
	assert.Contains(t, edit, `value="patch"`)
	assert.Contains(t, edit, "new &lt;/textarea&gt; text")
}

func TestGramsIndexPagination(t *testing.T) {
	grams := []*models.GramResponse{sampleGram(1, "")}

	html := renderString(t, GramsIndex(Page{}, grams, 1, 3, 20))
	assert.Contains(t, html, `href="/grams?page=1&amp;size=20">Newer`)
	assert.Contains(t, html, `href="/grams?page=3&amp;size=20">Older`)
	assert.NotContains(t, html, "/comments/new")

	empty := renderString(t, GramsIndex(Page{}, nil, 0, 0, 20))
	assert.Contains(t, empty, "No grams yet.")
	assert.NotContains(t, empty, "Newer")
	assert.NotContains(t, empty, "Older")
}

func TestErrorPage(t *testing.T) {
	html := renderString(t, ErrorPage(Page{Title: "Not Found", Errors: []error{errors.New("gram not found")}}, http.StatusNotFound))

	assert.Contains(t, html, "<h1>404 Not Found</h1>")
	assert.Contains(t, html, "<li>gram not found</li>")
}

func TestHTMLRendererWithGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HTMLRender = &HTMLRenderer{}
	router.GET("/missing", func(ctx *gin.Context) {
		ctx.HTML(http.StatusNotFound, "", ErrorPage(Page{Title: "Not Found"}, http.StatusNotFound))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<h1>404 Not Found</h1>")
}
