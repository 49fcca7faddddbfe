package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moto-repaint-backend/internal/content"
	"moto-repaint-backend/internal/showcase"
)

type slideEvent struct {
	Stream      string              `json:"stream"`
	Index       int                 `json:"index"`
	Total       int                 `json:"total"`
	Autoplay    bool                `json:"autoplay"`
	Testimonial content.Testimonial `json:"testimonial"`
}

// streamRegistry maps open testimonial streams to their carousels so the
// page can navigate the one it is watching.
type streamRegistry struct {
	mu        sync.Mutex
	carousels map[string]*showcase.Carousel
}

func (s *streamRegistry) add(c *showcase.Carousel) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.carousels == nil {
		s.carousels = make(map[string]*showcase.Carousel)
	}
	s.carousels[id] = c
	return id
}

func (s *streamRegistry) remove(id string) {
	s.mu.Lock()
	delete(s.carousels, id)
	s.mu.Unlock()
}

func (s *streamRegistry) get(id string) (*showcase.Carousel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carousels[id]
	return c, ok
}

// GET /api/testimonials/stream pushes the active testimonial as server-sent
// events. Each connection owns its carousel; it stops with the connection.
func (e *Env) HandleTestimonialStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		e.methodNotAllowed(w)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		e.writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	testimonials := e.Content.Get().Testimonials
	if len(testimonials) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	// only the latest slide is kept while the client is behind
	changes := make(chan int, 1)
	carousel := showcase.NewCarousel(len(testimonials), showcase.CarouselOptions{
		Interval: e.CarouselInterval,
		OnChange: func(i int) {
			select {
			case changes <- i:
				return
			default:
			}
			select {
			case <-changes:
			default:
			}
			select {
			case changes <- i:
			default:
			}
		},
	})
	defer carousel.Close()
	stream := e.streams.add(carousel)
	defer e.streams.remove(stream)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func(i int) bool {
		b, err := json.Marshal(slideEvent{
			Stream:      stream,
			Index:       i,
			Total:       len(testimonials),
			Autoplay:    carousel.Autoplay(),
			Testimonial: testimonials[i],
		})
		if err != nil {
			e.Log.Error("encode testimonial", zap.Error(err))
			return false
		}
		if _, err := fmt.Fprintf(w, "event: slide\ndata: %s\n\n", b); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !send(carousel.Active()) {
		return
	}
	carousel.Start()

	for {
		select {
		case <-r.Context().Done():
			return
		case i := <-changes:
			if !send(i) {
				return
			}
		}
	}
}

type carouselControlRequest struct {
	Index *int  `json:"index"`
	On    *bool `json:"on"`
}

type carouselState struct {
	Index    int  `json:"index"`
	Autoplay bool `json:"autoplay"`
}

// POST /api/testimonials/stream/{id}/{action}, action is next, prev, goto
// ({"index":n}) or autoplay ({"on":bool}). Manual moves stop autoplay.
func (e *Env) HandleTestimonialControl(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		e.methodNotAllowed(w)
		return
	}
	carousel, ok := e.streams.get(r.PathValue("id"))
	if !ok {
		e.writeError(w, http.StatusNotFound, "stream not found")
		return
	}

	switch r.PathValue("action") {
	case "next":
		carousel.Next()
	case "prev":
		carousel.Prev()
	case "goto":
		var req carouselControlRequest
		if err := decodeJSON(r, &req); err != nil {
			e.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Index == nil || !carousel.GoTo(*req.Index) {
			e.writeError(w, http.StatusBadRequest, "index out of range")
			return
		}
	case "autoplay":
		var req carouselControlRequest
		if err := decodeJSON(r, &req); err != nil {
			e.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.On == nil {
			e.writeError(w, http.StatusBadRequest, "on is required")
			return
		}
		carousel.SetAutoplay(*req.On)
	default:
		e.writeError(w, http.StatusNotFound, "unknown carousel action")
		return
	}

	e.writeJSON(w, carouselState{Index: carousel.Active(), Autoplay: carousel.Autoplay()})
}
