package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ssargent/pngme/pkg/png"
)

// Server holds the API server state
type Server struct {
	config  ServerConfig
	metrics *Metrics
	logger  *slog.Logger
}

// NewServer creates a new API server
func NewServer(config ServerConfig, metrics *Metrics, logger *slog.Logger) *Server {
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = 32 << 20
	}
	return &Server{
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleChunks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	image, ok := s.readPng(w, r, "print")
	if !ok {
		return
	}

	chunks := image.Chunks()
	infos := make([]ChunkInfo, 0, len(chunks))
	for i, c := range chunks {
		t := c.Type()
		infos = append(infos, ChunkInfo{
			Index:      i,
			Type:       t.String(),
			Length:     c.Length(),
			CRC:        c.CRC(),
			Critical:   t.IsCritical(),
			Public:     t.IsPublic(),
			SafeToCopy: t.IsSafeToCopy(),
			Valid:      t.IsValid(),
		})
	}

	s.metrics.RecordOperation("print", true, time.Since(start))
	sendSuccess(w, infos)
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	chunkType, err := png.ParseChunkType(r.URL.Query().Get("type"))
	if err != nil {
		s.fail(w, "encode", start, err.Error(), http.StatusBadRequest)
		return
	}

	image, ok := s.readPng(w, r, "encode")
	if !ok {
		return
	}

	chunk, err := png.NewChunk(chunkType, []byte(r.URL.Query().Get("message")))
	if err != nil {
		s.fail(w, "encode", start, err.Error(), http.StatusBadRequest)
		return
	}
	if !chunkType.IsValid() {
		s.logger.Warn("encoding chunk with reserved bit set", "type", chunkType.String())
	}
	image.AppendChunk(chunk)

	s.metrics.RecordOperation("encode", true, time.Since(start))
	sendPng(w, image.Bytes())
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	chunkType, err := png.ParseChunkType(r.URL.Query().Get("type"))
	if err != nil {
		s.fail(w, "decode", start, err.Error(), http.StatusBadRequest)
		return
	}

	image, ok := s.readPng(w, r, "decode")
	if !ok {
		return
	}

	chunk, found := image.ChunkByType(chunkType.String())
	if !found {
		err := &png.NotFoundError{Type: chunkType.String()}
		s.fail(w, "decode", start, err.Error(), http.StatusNotFound)
		return
	}
	message, err := chunk.DataAsString()
	if err != nil {
		s.fail(w, "decode", start, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.metrics.RecordOperation("decode", true, time.Since(start))
	sendSuccess(w, MessageResponse{Type: chunkType.String(), Message: message})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	chunkType := r.URL.Query().Get("type")
	if _, err := png.ParseChunkType(chunkType); err != nil {
		s.fail(w, "remove", start, err.Error(), http.StatusBadRequest)
		return
	}

	image, ok := s.readPng(w, r, "remove")
	if !ok {
		return
	}

	if _, err := image.RemoveChunk(chunkType); err != nil {
		s.fail(w, "remove", start, err.Error(), http.StatusNotFound)
		return
	}

	s.metrics.RecordOperation("remove", true, time.Since(start))
	sendPng(w, image.Bytes())
}

// readPng decodes the request body. On failure it has already written the
// error response and returns false.
func (s *Server) readPng(w http.ResponseWriter, r *http.Request, operation string) (*png.Png, bool) {
	start := time.Now()
	body := http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	defer body.Close()

	image, err := png.Decode(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			s.fail(w, operation, start, "request body too large", http.StatusRequestEntityTooLarge)
		default:
			if errors.Is(err, png.ErrInvalidCRC) {
				s.metrics.RecordCRCFailure()
			}
			s.fail(w, operation, start, err.Error(), http.StatusBadRequest)
		}
		return nil, false
	}

	s.metrics.RecordChunksParsed(image.Len())
	s.logger.Debug("parsed upload", "operation", operation, "chunks", image.Len(), "bytes", image.Size())
	return image, true
}

func (s *Server) fail(w http.ResponseWriter, operation string, start time.Time, message string, status int) {
	s.metrics.RecordOperation(operation, false, time.Since(start))
	s.logger.Info("request rejected", "operation", operation, "status_code", status, "error", message)
	sendError(w, message, status)
}
