package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"blogsync/internal/blog"
)

const defaultHTTPTimeout = 60 * time.Second

// Staged is the result of resolving one remote media reference: where the
// asset can be displayed from, plus whatever else the pipeline produced.
// Width/Height are 0 when dimensions could not be sniffed.
type Staged struct {
	PublicPath   string
	FallbackPath string
	SrcSet       string
	Width        int
	Height       int
}

// RemoteStore uploads original bytes for the external resize pipeline.
type RemoteStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// Resolver materializes remote media either as locally cached copies or as
// staged originals in remote storage. Results are memoized by source URL for
// the lifetime of the resolver, so one run fetches each unique URL at most
// once no matter how many blocks reference it. Staged results use a
// "pipeline:"-prefixed cache key to keep the two modes from colliding.
//
// The resolver is run-scoped state: build a fresh one per sync run.
type Resolver struct {
	local      *LocalStore
	remote     RemoteStore // nil when the s3 pipeline is not configured
	widths     []int       // ascending; responsive widths the pipeline generates
	baseURL    string      // public base for pipeline output, no trailing slash
	prefix     string      // originals key prefix, e.g. "notion-originals/"
	httpClient *http.Client
	logger     blog.Logger
	cache      map[string]Staged
}

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	Local      *LocalStore
	Remote     RemoteStore
	Widths     []int
	BaseURL    string
	Prefix     string
	HTTPClient *http.Client
	Logger     blog.Logger
}

// NewResolver creates a run-scoped resolver. Widths are normalized to a
// sorted positive list.
func NewResolver(opts ResolverOptions) *Resolver {
	widths := make([]int, 0, len(opts.Widths))
	for _, w := range opts.Widths {
		if w > 0 {
			widths = append(widths, w)
		}
	}
	sort.Ints(widths)

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = blog.NewNopLogger()
	}

	return &Resolver{
		local:      opts.Local,
		remote:     opts.Remote,
		widths:     widths,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		prefix:     opts.Prefix,
		httpClient: httpClient,
		logger:     logger,
		cache:      make(map[string]Staged),
	}
}

// PipelineEnabled reports whether the remote staging mode is configured.
func (r *Resolver) PipelineEnabled() bool {
	return r.remote != nil
}

// Widths returns the configured responsive widths, ascending.
func (r *Resolver) Widths() []int {
	return r.widths
}

// CacheLocal downloads the asset and stores it in the local asset directory.
// It never fails the caller: on any error it logs a warning and returns the
// original URL as the public path so the page still renders, degraded.
func (r *Resolver) CacheLocal(ctx context.Context, sourceURL, blockID, fallbackExt string) Staged {
	if sourceURL == "" {
		return Staged{}
	}
	if staged, ok := r.cache[sourceURL]; ok {
		return staged
	}

	staged, err := r.cacheLocal(ctx, sourceURL, blockID, fallbackExt)
	if err != nil {
		r.logger.Warn("failed to cache asset", "block", blockID, "error", err)
		staged = Staged{PublicPath: sourceURL}
	}

	r.cache[sourceURL] = staged
	return staged
}

func (r *Resolver) cacheLocal(ctx context.Context, sourceURL, blockID, fallbackExt string) (Staged, error) {
	data, contentType, err := r.fetch(ctx, sourceURL)
	if err != nil {
		return Staged{}, err
	}

	ext := extensionFromURL(sourceURL)
	if ext == "" {
		ext = extensionFromContentType(contentType, fallbackExt)
	}

	id := safeID(blockID, hashID(sourceURL))
	filename := id + ext

	publicPath, err := r.local.Save(filename, data)
	if err != nil {
		return Staged{}, err
	}

	w, h := detectDimensions(data)
	return Staged{PublicPath: publicPath, Width: w, Height: h}, nil
}

// StageRemote downloads the asset and uploads the original bytes to remote
// storage for the external resize pipeline, returning public paths that
// point at the pipeline's output objects. Unlike CacheLocal this returns an
// error: per-asset fallback (local cache or URL passthrough) is the caller's
// call, since it depends on whether the asset is Notion-hosted.
func (r *Resolver) StageRemote(ctx context.Context, sourceURL, blockID, fallbackExt string) (Staged, error) {
	if sourceURL == "" {
		return Staged{}, nil
	}
	cacheKey := "pipeline:" + sourceURL
	if staged, ok := r.cache[cacheKey]; ok {
		return staged, nil
	}

	data, contentType, err := r.fetch(ctx, sourceURL)
	if err != nil {
		return Staged{}, err
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	ext := extensionFromURL(sourceURL)
	if ext == "" {
		ext = extensionFromContentType(contentType, fallbackExt)
	}

	id := safeID(blockID, hashID(sourceURL))
	key := r.prefix + id + ext
	keyNoExt := stripExtension(key)

	w, h := detectDimensions(data)

	if err := r.remote.Upload(ctx, key, data, contentType); err != nil {
		return Staged{}, err
	}

	var srcsetParts []string
	for _, width := range r.widths {
		srcsetParts = append(srcsetParts, fmt.Sprintf("%s %dw", r.publicURL(fmt.Sprintf("%s/w%d.webp", keyNoExt, width)), width))
	}

	fallbackPath := r.publicURL(fmt.Sprintf("%s/original%s", keyNoExt, ext))
	publicPath := fallbackPath
	if len(r.widths) > 0 {
		largest := r.widths[len(r.widths)-1]
		publicPath = r.publicURL(fmt.Sprintf("%s/w%d.webp", keyNoExt, largest))
	}

	staged := Staged{
		PublicPath:   publicPath,
		FallbackPath: fallbackPath,
		SrcSet:       strings.Join(srcsetParts, ", "),
		Width:        w,
		Height:       h,
	}
	r.cache[cacheKey] = staged
	return staged, nil
}

// fetch downloads the asset, treating any non-2xx status as an error.
func (r *Resolver) fetch(ctx context.Context, sourceURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("downloading asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("downloading asset: http %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading asset body: %w", err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// publicURL joins the configured base with a key, defaulting to https when
// the base is a bare domain.
func (r *Resolver) publicURL(key string) string {
	if strings.HasPrefix(r.baseURL, "http://") || strings.HasPrefix(r.baseURL, "https://") {
		return r.baseURL + "/" + key
	}
	return "https://" + r.baseURL + "/" + key
}

var trailingExt = regexp.MustCompile(`\.[^./]+$`)

// stripExtension removes a trailing file extension from a storage key.
func stripExtension(key string) string {
	return trailingExt.ReplaceAllString(key, "")
}
