package request

import (
	"net/url"
	"strconv"
	"strings"

	"movie-api/internal/data/repository"
	"movie-api/pkg/apperror"
	"movie-api/pkg/utils"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is a 0-based page window with an optional sort order.
type PageRequest struct {
	Page   int
	Size   int
	SortBy string
	Desc   bool
}

// ParsePageRequest reads page, size and sort from query. Absent values fall
// back to page 0, size 20, sorted by id ascending.
func ParsePageRequest(query url.Values) (*PageRequest, error) {
	req := &PageRequest{
		Page:   0,
		Size:   DefaultPageSize,
		SortBy: repository.SortByID,
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperror.InvalidArgument("Invalid parameter 'page' with value '%s'", raw)
		}
		req.Page = page
	}

	if raw := query.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperror.InvalidArgument("Invalid parameter 'size' with value '%s'", raw)
		}
		req.Size = size
	}

	if raw := query.Get("sort"); raw != "" {
		property, direction, _ := strings.Cut(raw, ",")
		property = strings.TrimSpace(property)
		if !repository.IsMovieSortProperty(property) {
			return nil, apperror.InvalidArgument("Invalid sort property '%s'", property)
		}
		req.SortBy = property

		switch strings.ToLower(strings.TrimSpace(direction)) {
		case "", "asc":
		case "desc":
			req.Desc = true
		default:
			return nil, apperror.InvalidArgument("Invalid sort direction '%s'", direction)
		}
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return apperror.InvalidArgument("Page index must not be negative")
	}
	if p.Size < 1 || p.Size > MaxPageSize {
		return apperror.InvalidArgument("Page size must be between 1 and %d", MaxPageSize)
	}
	return nil
}

func (p PageRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Size)
}

func (p PageRequest) Query() *repository.PageQuery {
	return &repository.PageQuery{
		Offset: p.Offset(),
		Limit:  p.Size,
		SortBy: p.SortBy,
		Desc:   p.Desc,
	}
}
