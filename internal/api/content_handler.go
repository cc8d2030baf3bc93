package api

import (
	"net/http"
	"strconv"

	"github.com/fashion-digest/internal/config"
	"github.com/fashion-digest/internal/models"
	"github.com/fashion-digest/internal/service"
	"github.com/fashion-digest/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const flashCommentPosted = "Comment posted."

// ContentHandler handles the listing, detail and comment pages
type ContentHandler struct {
	services *service.Services
	cfg      *config.Config
	sessions *sessionManager
	log      zerolog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(services *service.Services, cfg *config.Config, sessions *sessionManager, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		services: services,
		cfg:      cfg,
		sessions: sessions,
		log:      log.With().Str("handler", "content").Logger(),
	}
}

// commentFormView is what the comment_form template renders
type commentFormView struct {
	Action      string
	Comment     string
	CSRFToken   string
	FieldErrors []string
	FormErrors  []string
}

// Home handles GET /
func (h *ContentHandler) Home(c *gin.Context) {
	featured, err := h.services.Content.Featured(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{"featured": featured})
}

// ListNews handles GET /news
func (h *ContentHandler) ListNews(c *gin.Context) {
	articles, err := h.services.Content.ListArticles(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.render(c, http.StatusOK, "news.html", gin.H{"title": "News", "articles": articles})
}

// ListVideos handles GET /videos
func (h *ContentHandler) ListVideos(c *gin.Context) {
	videos, err := h.services.Content.ListVideos(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.render(c, http.StatusOK, "videos.html", gin.H{"title": "Videos", "videos": videos})
}

// Shop handles GET /shop
func (h *ContentHandler) Shop(c *gin.Context) {
	h.render(c, http.StatusOK, "shop.html", gin.H{"title": "Shop"})
}

// ShowArticle handles GET /get_news/:id
func (h *ContentHandler) ShowArticle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	detail, err := h.services.Content.GetArticle(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	sess := h.sessions.load(c)
	form := h.emptyForm(sess, articlePath(id))
	h.renderDetail(c, sess, http.StatusOK, "get_news.html", detail.Article.Title, detail, form)
}

// CommentOnArticle handles POST /get_news/:id
func (h *ContentHandler) CommentOnArticle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	detail, err := h.services.Content.GetArticle(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	sess := h.sessions.load(c)
	form, done := h.submitComment(c, sess, models.CommentKindArticle, id, articlePath(id))
	if done {
		return
	}
	h.renderDetail(c, sess, http.StatusUnprocessableEntity, "get_news.html", detail.Article.Title, detail, form)
}

// ShowVideo handles GET /get_vid/:id
func (h *ContentHandler) ShowVideo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	detail, err := h.services.Content.GetVideo(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	sess := h.sessions.load(c)
	form := h.emptyForm(sess, videoPath(id))
	h.renderDetail(c, sess, http.StatusOK, "get_vid.html", detail.Video.Title, detail, form)
}

// CommentOnVideo handles POST /get_vid/:id
func (h *ContentHandler) CommentOnVideo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	detail, err := h.services.Content.GetVideo(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	sess := h.sessions.load(c)
	form, done := h.submitComment(c, sess, models.CommentKindVideo, id, videoPath(id))
	if done {
		return
	}
	h.renderDetail(c, sess, http.StatusUnprocessableEntity, "get_vid.html", detail.Video.Title, detail, form)
}

// submitComment validates and stores a posted comment. When it returns
// done the response has been written (redirect or error page); otherwise
// the returned form carries the errors to re-render.
func (h *ContentHandler) submitComment(c *gin.Context, sess *requestSession, kind models.CommentKind, parentID int64, path string) (*commentFormView, bool) {
	submitted := validation.CommentForm{
		Comment:   c.PostForm("comment"),
		CSRFToken: c.PostForm("csrf_token"),
	}

	form := h.emptyForm(sess, path)
	form.Comment = submitted.Comment

	if h.cfg.Security.CSRFEnabled && !sess.validCSRF(submitted.CSRFToken) {
		form.FormErrors = []string{msgCSRF}
		return form, false
	}

	result := validation.ValidateComment(submitted)
	if !result.Valid {
		form.FieldErrors = result.FieldErrors("comment")
		return form, false
	}

	if _, err := h.services.Comment.AddComment(c.Request.Context(), kind, parentID, result.Text); err != nil {
		respondError(c, h.log, err)
		return nil, true
	}
	commentsCreatedTotal.WithLabelValues(string(kind)).Inc()

	sess.addFlash(flashCommentPosted)
	sess.save(c)
	c.Redirect(http.StatusFound, path)
	return nil, true
}

func (h *ContentHandler) emptyForm(sess *requestSession, action string) *commentFormView {
	return &commentFormView{Action: action, CSRFToken: sess.csrfToken()}
}

func (h *ContentHandler) renderDetail(c *gin.Context, sess *requestSession, status int, page, title string, detail interface{}, form *commentFormView) {
	flashes := sess.flashes()
	sess.save(c)
	c.HTML(status, page, gin.H{
		"title":   title,
		"detail":  detail,
		"form":    form,
		"flashes": flashes,
	})
}

// render shows a page that has no form; pending flashes are consumed
func (h *ContentHandler) render(c *gin.Context, status int, page string, data gin.H) {
	sess := h.sessions.load(c)
	if flashes := sess.flashes(); len(flashes) > 0 {
		data["flashes"] = flashes
		sess.save(c)
	}
	c.HTML(status, page, data)
}

// parseID reads the :id path parameter. Anything but a positive integer
// renders the not-found page, like an unmatched route would.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		renderError(c, http.StatusNotFound, msgNotFound)
		return 0, false
	}
	return id, true
}

func articlePath(id int64) string {
	return "/get_news/" + strconv.FormatInt(id, 10)
}

func videoPath(id int64) string {
	return "/get_vid/" + strconv.FormatInt(id, 10)
}
