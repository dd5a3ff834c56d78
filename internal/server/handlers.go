package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lehigh-university-libraries/zotero-xml/format"
	"github.com/lehigh-university-libraries/zotero-xml/hub"
	"github.com/lehigh-university-libraries/zotero-xml/internal/logging"
)

const contentTypeXML = "application/xml; charset=utf-8"

type errorResponse struct {
	Error string `json:"error"`
}

type generateHandler struct {
	metrics *metrics
}

func (h *generateHandler) fixed(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.generate(c, name)
	}
}

func (h *generateHandler) byParam(c *gin.Context) {
	h.generate(c, c.Param("format"))
}

// generate decodes the request body as one record and writes the document.
// ?strip_html=true removes HTML markup from the abstract first.
func (h *generateHandler) generate(c *gin.Context, name string) {
	g, err := format.GetGenerator(name)
	if err != nil {
		h.metrics.observe("unknown", outcomeUnknownFormat)
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.metrics.observe(g.Name(), outcomeTooLarge)
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: "reading body: " + err.Error()})
		return
	}

	record, err := hub.Decode(body)
	if err != nil {
		h.metrics.observe(g.Name(), outcomeDecodeError)
		logging.FromContext(c.Request.Context()).Warn("rejected record", "format", g.Name(), "error", err)
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	strip, _ := strconv.ParseBool(c.Query("strip_html"))
	opts := &format.SerializeOptions{StripHTML: strip}

	var buf bytes.Buffer
	if err := format.Serialize(&buf, g, record, opts); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	h.metrics.observe(g.Name(), outcomeSuccess)
	c.Data(http.StatusOK, contentTypeXML, buf.Bytes())
}
