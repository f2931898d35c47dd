package ginserver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"poolbnb/internal/app/dto"
	poolsvc "poolbnb/internal/app/services/pool"
	domainpool "poolbnb/internal/domain/pool"
	"poolbnb/internal/infra/storage/s3"
)

type PoolHTTP interface {
	Create(c *gin.Context)
	Details(c *gin.Context)
	Featured(c *gin.Context)
	Search(c *gin.Context)
	SortFilter(c *gin.Context)
}

type PoolHandler struct {
	Service  *poolsvc.Service
	Uploader s3.Uploader
	Logger   *slog.Logger
}

// Create accepts a multipart form: text fields describe the pool,
// `availability` carries a JSON array of {start_date, end_date} pairs,
// and `photos` file parts are uploaded to object storage before the
// listing is validated and persisted.
func (h PoolHandler) Create(c *gin.Context) {
	p, ok := requireSession(c)
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	priceCents, err := strconv.ParseInt(formValue(form, "price_cents"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	var windows []poolsvc.AvailabilityWindow
	if raw := formValue(form, "availability"); raw != "" {
		var decoded []struct {
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
		}
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
			return
		}
		for _, w := range decoded {
			windows = append(windows, poolsvc.AvailabilityWindow{StartDate: w.StartDate, EndDate: w.EndDate})
		}
	}

	photos, err := h.uploadPhotos(c, form.File["photos"])
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("photo upload failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "File upload failed"})
		return
	}
	photos = append(photos, formValues(form, "photos")...)

	created, err := h.Service.Create(c.Request.Context(), poolsvc.CreateParams{
		Host:         p.ID,
		Name:         formValue(form, "name"),
		Location:     formValue(form, "location"),
		Description:  formValue(form, "description"),
		PriceCents:   priceCents,
		Availability: windows,
		Amenities:    formValues(form, "amenities"),
		Photos:       photos,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Pool created successfully", "pool": dto.NewPool(created)})
}

func (h PoolHandler) Details(c *gin.Context) {
	p, err := h.Service.ByID(c.Request.Context(), domainpool.ID(c.Param("id")))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPool(p))
}

func (h PoolHandler) Featured(c *gin.Context) {
	pools, err := h.Service.Featured(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPoolList(pools))
}

func (h PoolHandler) Search(c *gin.Context) {
	minPrice, maxPrice, ok := priceRangeParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid search criteria"})
		return
	}
	pools, err := h.Service.Search(c.Request.Context(), poolsvc.SearchParams{
		Location:      c.Query("location"),
		StartDate:     c.Query("startDate"),
		EndDate:       c.Query("endDate"),
		PriceMinCents: minPrice,
		PriceMaxCents: maxPrice,
		Features:      featureParams(c),
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPoolList(pools))
}

func (h PoolHandler) SortFilter(c *gin.Context) {
	minPrice, maxPrice, ok := priceRangeParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid sort/filter criteria"})
		return
	}
	pools, err := h.Service.SortFilter(c.Request.Context(), poolsvc.SortFilterParams{
		SortBy:        c.Query("sortBy"),
		Order:         c.Query("order"),
		PriceMinCents: minPrice,
		PriceMaxCents: maxPrice,
		Features:      featureParams(c),
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPoolList(pools))
}

func (h PoolHandler) uploadPhotos(c *gin.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if h.Uploader == nil {
		return nil, fmt.Errorf("uploader not configured")
	}
	urls := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %s: %w", header.Filename, err)
		}
		key := fmt.Sprintf("pools/%s%s", uuid.NewString(), filepath.Ext(header.Filename))
		url, err := h.Uploader.Upload(c.Request.Context(), key, file, header.Header.Get("Content-Type"))
		file.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func priceRangeParams(c *gin.Context) (min, max int64, ok bool) {
	var err error
	if raw := c.Query("minPrice"); raw != "" {
		if min, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return 0, 0, false
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if max, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return 0, 0, false
		}
	}
	return min, max, true
}

func featureParams(c *gin.Context) []string {
	features := c.QueryArray("features")
	if len(features) == 1 && strings.Contains(features[0], ",") {
		features = strings.Split(features[0], ",")
	}
	return features
}

func formValue(form *multipart.Form, key string) string {
	values := form.Value[key]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func formValues(form *multipart.Form, key string) []string {
	var out []string
	for _, v := range form.Value[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

var _ PoolHTTP = PoolHandler{}
