// Package web serves the signup form and the confirmation view. Both are
// thin presentational layers over the subscription contract: the form hands
// off to the submission client, the confirmation view renders whatever the
// handoff query carries, with "-" for anything missing.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"coffee-subscribe/internal/catalog"
	"coffee-subscribe/internal/client"
	"coffee-subscribe/internal/common/logger"
	"coffee-subscribe/internal/subscription"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses the embedded page templates for the gin engine.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
}

type Handler struct {
	newSubmit func() *client.Client
	logger    logger.Logger
}

// NewHandler wires the page handlers. newSubmit builds the submission client
// for a single form post: the duplicate-submit guard is scoped to one
// interactive session, so concurrent posts from different users must not
// share a client.
func NewHandler(newSubmit func() *client.Client, log logger.Logger) *Handler {
	return &Handler{
		newSubmit: newSubmit,
		logger:    log.WithFields(map[string]interface{}{"handler": "web"}),
	}
}

type roastOption struct {
	ID   string
	Name string
	Note string
}

type sizeOption struct {
	ID    string
	Label string
	Price float64
}

type frequencyOption struct {
	ID              string
	Label           string
	DiscountPercent int
}

type formPage struct {
	Roasts         []roastOption
	Sizes          []sizeOption
	Frequencies    []frequencyOption
	Selected       client.Selection
	EstimatedPrice string
	Error          string
}

func defaultSelection() client.Selection {
	return client.Selection{
		RoastID:     catalog.Roasts()[0].ID,
		SizeID:      catalog.Sizes()[0].ID,
		FrequencyID: catalog.Frequencies()[1].ID,
	}
}

func buildFormPage(sel client.Selection, errMsg string) formPage {
	page := formPage{
		Selected: sel,
		Error:    errMsg,
	}
	for _, r := range catalog.Roasts() {
		page.Roasts = append(page.Roasts, roastOption{ID: r.ID, Name: r.Name, Note: r.Note})
	}
	for _, s := range catalog.Sizes() {
		page.Sizes = append(page.Sizes, sizeOption{ID: s.ID, Label: s.Label, Price: s.Price})
	}
	for _, f := range catalog.Frequencies() {
		page.Frequencies = append(page.Frequencies, frequencyOption{
			ID:              f.ID,
			Label:           f.Label,
			DiscountPercent: int(f.Discount*100 + 0.5),
		})
	}

	if quote, err := catalog.Quote(sel.SizeID, sel.FrequencyID); err == nil {
		page.EstimatedPrice = subscription.NewPrice(quote).Display()
	} else {
		page.EstimatedPrice = "-"
	}

	return page
}

//
// --------------------------------------------------
// GET /
// --------------------------------------------------
//

func (h *Handler) Form() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "subscribe.html", buildFormPage(defaultSelection(), ""))
	}
}

//
// --------------------------------------------------
// POST /subscribe
// --------------------------------------------------
//

func (h *Handler) SubmitForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		sel := client.Selection{
			RoastID:     c.PostForm("roast"),
			SizeID:      c.PostForm("size"),
			FrequencyID: c.PostForm("frequency"),
			Email:       c.PostForm("email"),
		}

		// Selects only offer catalog ids; anything else is a tampered form.
		if !knownSelection(sel) {
			h.logger.Warn("form carried unknown catalog ids", map[string]interface{}{
				"roast": sel.RoastID, "size": sel.SizeID, "frequency": sel.FrequencyID,
			})
			sel = client.Selection{
				RoastID:     defaultSelection().RoastID,
				SizeID:      defaultSelection().SizeID,
				FrequencyID: defaultSelection().FrequencyID,
				Email:       sel.Email,
			}
		}

		res := h.newSubmit().Submit(c.Request.Context(), sel)
		if !res.OK {
			c.HTML(http.StatusOK, "subscribe.html", buildFormPage(sel, res.Error))
			return
		}

		req := client.BuildRequest(sel)
		c.Redirect(http.StatusSeeOther, client.ConfirmURL(sel, req, res))
	}
}

func knownSelection(sel client.Selection) bool {
	if _, ok := catalog.RoastByID(sel.RoastID); !ok {
		return false
	}
	if _, ok := catalog.SizeByID(sel.SizeID); !ok {
		return false
	}
	if _, ok := catalog.FrequencyByID(sel.FrequencyID); !ok {
		return false
	}
	return true
}

//
// --------------------------------------------------
// GET /confirm
// --------------------------------------------------
//

type confirmPage struct {
	Roast       string
	Size        string
	Frequency   string
	Price       string
	Email       string
	EmailStatus string
	Confirmed   bool
}

func (h *Handler) Confirm() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Query("emailStatus")

		page := confirmPage{
			Roast:       subscription.DisplayOr(c.Query("roast"), "-"),
			Size:        subscription.DisplayOr(c.Query("size"), "-"),
			Frequency:   subscription.DisplayOr(c.Query("frequency"), "-"),
			Price:       subscription.PriceFromString(c.Query("price")).Display(),
			Email:       subscription.DisplayOr(c.Query("email"), "-"),
			EmailStatus: subscription.DisplayOr(status, "-"),
			Confirmed:   status == "sent" || status == "sent_demo",
		}

		c.HTML(http.StatusOK, "confirm.html", page)
	}
}
