package handler

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/jugador-equipo/internal/repository"
)

// Параметры пагинации
const (
	defaultPageSize = 20
	maxPageSize     = 1000
)

// pathInt64 читает целочисленный параметр пути
func pathInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

// parsePage читает page/size из query. ok=false если клиент не просил пагинацию
func parsePage(r *http.Request) (page repository.Page, ok bool, err error) {
	q := r.URL.Query()
	if !q.Has("page") && !q.Has("size") {
		return repository.Page{}, false, nil
	}

	page = repository.Page{Number: 0, Size: defaultPageSize}
	if raw := q.Get("page"); raw != "" {
		if page.Number, err = strconv.Atoi(raw); err != nil || page.Number < 0 {
			return page, true, fmt.Errorf("page must be a non-negative integer, got %q", raw)
		}
	}
	if raw := q.Get("size"); raw != "" {
		if page.Size, err = strconv.Atoi(raw); err != nil || page.Size <= 0 || page.Size > maxPageSize {
			return page, true, fmt.Errorf("size must be between 1 and %d, got %q", maxPageSize, raw)
		}
	}
	// Смещение page*size должно помещаться в int
	if page.Number > (math.MaxInt-1)/page.Size {
		return page, true, fmt.Errorf("page %d is out of range for size %d", page.Number, page.Size)
	}

	return page, true, nil
}

// setPaginationHeaders выставляет X-Total-Count и Link (RFC 5988)
func setPaginationHeaders(w http.ResponseWriter, r *http.Request, page repository.Page, total int) {
	w.Header().Set("X-Total-Count", strconv.Itoa(total))

	lastPage := 0
	if total > 0 {
		lastPage = (total - 1) / page.Size
	}

	var links []string
	if page.Number < lastPage {
		links = append(links, pageLink(r, page.Number+1, page.Size, "next"))
	}
	if page.Number > 0 {
		links = append(links, pageLink(r, page.Number-1, page.Size, "prev"))
	}
	links = append(links,
		pageLink(r, lastPage, page.Size, "last"),
		pageLink(r, 0, page.Size, "first"),
	)

	w.Header().Set("Link", strings.Join(links, ","))
}

func pageLink(r *http.Request, number, size int, rel string) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(number))
	q.Set("size", strconv.Itoa(size))
	u := url.URL{Path: r.URL.Path, RawQuery: q.Encode()}
	return fmt.Sprintf(`<%s>; rel="%s"`, u.String(), rel)
}
