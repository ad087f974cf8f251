package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/notes/locale"
	"github.com/oliverisaac/notes/store"
	"github.com/oliverisaac/notes/types"
	"github.com/oliverisaac/notes/views"
	"github.com/sirupsen/logrus"
)

const (
	statusParam      = "status"
	statusSuccessAdd = "success_add"
	contentField     = "note_content"
	submitField      = "add_note"
)

type noteStore interface {
	EnsureSchema(ctx context.Context) error
	InsertNote(ctx context.Context, content string) (uint, error)
	ListNotes(ctx context.Context) ([]types.Note, error)
}

func newPageData(cfg types.Config, c echo.Context) types.HomePageData {
	tag := locale.Resolve(cfg.Lang, c.Request().Header.Get("Accept-Language"))
	return types.NewHomePageData(tag, locale.Printer(tag))
}

// prepareStore returns a page in the store-unavailable state when the schema
// cannot be ensured.
func prepareStore(c echo.Context, st noteStore, pageData types.HomePageData) (types.HomePageData, bool) {
	if err := st.EnsureSchema(c.Request().Context()); err != nil {
		logStoreError(err)
		return pageData.WithConnectionError(pageData.T("error.connection", err.Error())), false
	}
	return pageData, true
}

func homePageHandler(cfg types.Config, st noteStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		pageData, ok := prepareStore(c, st, newPageData(cfg, c))
		if !ok {
			return c.Render(http.StatusOK, views.IndexTemplate, pageData)
		}
		return displayNotes(c, st, pageData)
	}
}

func createNote(cfg types.Config, st noteStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		pageData, ok := prepareStore(c, st, newPageData(cfg, c))
		if !ok {
			return c.Render(http.StatusOK, views.IndexTemplate, pageData)
		}

		if _, err := c.FormParams(); err != nil {
			logrus.Warnf("Parsing note form: %v", err)
		}
		// Body fields only; the query string never counts as a submission.
		params := c.Request().PostForm
		if _, submitted := params[submitField]; !submitted {
			return displayNotes(c, st, pageData)
		}

		content := strings.TrimSpace(params.Get(contentField))
		if content == "" {
			logrus.Infof("Rejecting blank note")
			pageData = pageData.WithMessage(types.MessageWarning, pageData.T("message.empty_content"))
			return displayNotes(c, st, pageData)
		}

		id, err := st.InsertNote(c.Request().Context(), content)
		if err != nil {
			logStoreError(err)
			pageData = pageData.WithMessage(types.MessageError, pageData.T("error.insert", err.Error()))
			return displayNotes(c, st, pageData)
		}

		logrus.Infof("Created note %d", id)
		return c.Redirect(http.StatusSeeOther, "/?"+statusParam+"="+statusSuccessAdd)
	}
}

func displayNotes(c echo.Context, st noteStore, pageData types.HomePageData) error {
	if pageData.Message == nil && c.QueryParam(statusParam) == statusSuccessAdd {
		pageData = pageData.WithMessage(types.MessageSuccess, pageData.T("message.added"))
	}

	notes, err := st.ListNotes(c.Request().Context())
	if err != nil {
		logStoreError(err)
		pageData = pageData.WithListError(pageData.T("error.fetch", err.Error()))
	} else {
		pageData = pageData.WithNotes(notes)
	}

	logrus.Infof("Generating homepage with %d notes", len(pageData.Notes))
	return c.Render(http.StatusOK, views.IndexTemplate, pageData)
}

func logStoreError(err error) {
	logrus.WithField("kind", store.KindOf(err).String()).Error(err)
}
