package main

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/rprtr258/enhancer/internal/logger"
	enhancer "github.com/rprtr258/enhancer/pkg"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pagesTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

var imageCounter atomic.Uint64

func generateNewImageId() string {
	now := time.Now()
	return fmt.Sprintf("%s-%09d-%d", now.Format("2006-01-02-15-04-05"), now.Nanosecond(), imageCounter.Add(1))
}

type server struct {
	imgDir    string
	maxUpload int64
	client    *http.Client
	log       zerolog.Logger
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pagesTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error().Err(err).Str("template", name).Msg("render template")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type FormField struct {
	Name, Usage, Default, Value string
}

type FilterPageData struct {
	Kind       enhancer.Kind
	FilterName string
	Fields     []FormField
	ImageUrl   string
	Message    string
	Title      string
	SourceFile string
	ImageFile  string
}

func newFilterPageData(kind enhancer.Kind, form url.Values) FilterPageData {
	params := enhancer.Parameters(kind)
	fields := make([]FormField, len(params))
	for i, p := range params {
		fields[i] = FormField{p.Name, p.Usage, p.Default, form.Get(p.Name)}
	}
	return FilterPageData{
		Kind:       kind,
		FilterName: enhancer.Summary(kind),
		Fields:     fields,
		ImageUrl:   form.Get("url"),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, enhancer.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, enhancer.ErrInvalidImage):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func invalidImage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", enhancer.ErrInvalidImage, fmt.Sprintf(format, args...))
}

// readLimited reads at most limit bytes and fails if more are available.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, invalidImage("image is larger than %d bytes", limit)
	}
	return data, nil
}

func (s *server) downloadImage(r *http.Request, imageUrl string) ([]byte, error) {
	u, err := url.Parse(imageUrl)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: 'url' must be an http or https address", enhancer.ErrInvalidParameter)
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, invalidImage("download %q: %v", imageUrl, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, invalidImage("download %q: status %s", imageUrl, resp.Status)
	}
	if contentType := resp.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "image/") {
		return nil, invalidImage("image format %q is not supported", contentType)
	}
	return readLimited(resp.Body, s.maxUpload)
}

func readUpload(file multipart.File, limit int64) ([]byte, error) {
	defer file.Close()
	return readLimited(file, limit)
}

// sourceImage returns the raw bytes of the uploaded file or of the image
// behind the submitted url.
func (s *server) sourceImage(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		data, err := readUpload(file, s.maxUpload)
		return data, header.Filename, err
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		return nil, "", err
	}

	imageUrl := r.PostFormValue("url")
	if imageUrl == "" {
		return nil, "", fmt.Errorf("%w: 'file' or 'url' is not provided", enhancer.ErrInvalidParameter)
	}
	data, err := s.downloadImage(r, imageUrl)
	return data, imageUrl, err
}

func (s *server) filterHandler(kind enhancer.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			s.renderTemplate(w, http.StatusOK, "filter.html", newFilterPageData(kind, nil))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+1<<20)
		if err := r.ParseMultipartForm(s.maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			data := newFilterPageData(kind, nil)
			data.Message = fmt.Sprintf("Error reading form:\n%v", err)
			s.renderTemplate(w, status, "filter.html", data)
			return
		}

		data := newFilterPageData(kind, r.PostForm)
		fail := func(err error) {
			data.Message = fmt.Sprintf("Error occurred:\n%v", err)
			s.renderTemplate(w, statusFor(err), "filter.html", data)
		}

		op, err := enhancer.ParseOperation(kind, r.PostForm)
		if err != nil {
			data.Message = fmt.Sprintf("Error in request params:\n%v", err)
			s.renderTemplate(w, statusFor(err), "filter.html", data)
			return
		}

		raw, source, err := s.sourceImage(r)
		if err != nil {
			fail(err)
			return
		}
		im, format, err := enhancer.DecodeImage(bytes.NewReader(raw))
		if err != nil {
			fail(err)
			return
		}

		imageId := generateNewImageId()
		sourceImageFilename := fmt.Sprintf("%s.orig.%s", imageId, format)
		if err := os.WriteFile(filepath.Join(s.imgDir, sourceImageFilename), raw, 0o644); err != nil {
			fail(err)
			return
		}

		start := time.Now()
		res, err := op.Apply(im)
		if err != nil {
			fail(err)
			return
		}
		resultImageFilename := fmt.Sprintf("%s.res.png", imageId)
		if err := enhancer.SaveImageFile(res.ToStd(), filepath.Join(s.imgDir, resultImageFilename)); err != nil {
			fail(err)
			return
		}

		s.log.Info().
			Str("op", op.Title()).
			Str("source", source).
			Str("image_id", imageId).
			Dur("took", time.Since(start)).
			Msg("image processed")
		data.Message = fmt.Sprintf("Processed image %q in %v", source, time.Since(start).Round(time.Millisecond))
		data.Title = op.Title()
		data.SourceFile = "/img/" + sourceImageFilename
		data.ImageFile = "/img/" + resultImageFilename
		s.renderTemplate(w, http.StatusOK, "filter.html", data)
	}
}

type LastImage struct {
	ImageId    string
	SourceFile string
	ResultFile string
}

// lastImages pairs stored originals with results, newest first.
func (s *server) lastImages() ([]LastImage, error) {
	savedImages, err := os.ReadDir(s.imgDir)
	if err != nil {
		return nil, err
	}
	byId := map[string]*LastImage{}
	for _, x := range savedImages {
		filename := x.Name()
		dotBeforeExtension := strings.LastIndex(filename, ".")
		if dotBeforeExtension == -1 {
			continue
		}
		dotBeforeOrigOrRes := strings.LastIndex(filename[:dotBeforeExtension], ".")
		if dotBeforeOrigOrRes == -1 {
			continue
		}
		imageId := filename[:dotBeforeOrigOrRes]
		entry, ok := byId[imageId]
		if !ok {
			entry = &LastImage{ImageId: imageId}
			byId[imageId] = entry
		}
		switch filename[dotBeforeOrigOrRes+1 : dotBeforeExtension] {
		case "orig":
			entry.SourceFile = "/img/" + filename
		case "res":
			entry.ResultFile = "/img/" + filename
		}
	}

	lasts := make([]LastImage, 0, len(byId))
	for _, entry := range byId {
		if entry.SourceFile != "" || entry.ResultFile != "" {
			lasts = append(lasts, *entry)
		}
	}
	sort.Slice(lasts, func(i, j int) bool { return lasts[i].ImageId > lasts[j].ImageId })
	return lasts, nil
}

type IndexEntry struct {
	Route string
	Name  string
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/img/", http.StripPrefix("/img/", http.FileServer(http.Dir(s.imgDir))))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			s.renderTemplate(w, http.StatusNotFound, "404.html", nil)
			return
		}
		entries := make([]IndexEntry, len(enhancer.Kinds))
		for i, kind := range enhancer.Kinds {
			entries[i] = IndexEntry{"/" + string(kind), enhancer.Summary(kind)}
		}
		s.renderTemplate(w, http.StatusOK, "index.html", entries)
	})
	mux.HandleFunc("/lasts", func(w http.ResponseWriter, r *http.Request) {
		lasts, err := s.lastImages()
		if err != nil {
			s.log.Error().Err(err).Msg("reading images")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		s.renderTemplate(w, http.StatusOK, "lasts.html", lasts)
	})
	for _, kind := range enhancer.Kinds {
		mux.HandleFunc("/"+string(kind), s.filterHandler(kind))
	}
	return s.accessLog(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

func main() {
	if err := (&cli.App{
		Name:  "enhancerweb",
		Usage: "image enhancement web forms",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address", Value: ":8080", EnvVars: []string{"ENHANCER_ADDR"}},
			&cli.StringFlag{Name: "img-dir", Usage: "directory for uploaded and processed images", Value: "img", EnvVars: []string{"ENHANCER_IMG_DIR"}},
			&cli.Int64Flag{Name: "max-upload", Usage: "maximal image size in bytes", Value: 10 << 20, EnvVars: []string{"ENHANCER_MAX_UPLOAD"}},
			&cli.StringFlag{Name: "log-level", Usage: "log level", Value: "info", EnvVars: []string{"ENHANCER_LOG_LEVEL"}},
		},
		Action: func(c *cli.Context) error {
			log, err := logger.New(os.Stderr, c.String("log-level"), false)
			if err != nil {
				return err
			}

			s := &server{
				imgDir:    c.String("img-dir"),
				maxUpload: c.Int64("max-upload"),
				client:    &http.Client{Timeout: 15 * time.Second},
				log:       log,
			}
			if err := os.MkdirAll(s.imgDir, 0o755); err != nil {
				return err
			}

			srv := &http.Server{
				Addr:           c.String("addr"),
				Handler:        s.routes(),
				ReadTimeout:    30 * time.Second,
				WriteTimeout:   60 * time.Second,
				MaxHeaderBytes: 1 << 20,
			}
			log.Info().Str("addr", srv.Addr).Str("img_dir", s.imgDir).Msg("listening")
			return srv.ListenAndServe()
		},
	}).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
