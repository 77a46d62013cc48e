package client

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/beanoshub/booking-backend/internal/config"
)

// ErrMediaNotConfigured is returned when the media service credentials are
// absent from the deployment configuration.
var ErrMediaNotConfigured = errors.New("media service not configured")

// MediaClient uploads and looks up theatre images on the hosted media
// service.  Uploads are signed requests; lookups authenticate with basic
// auth against the search endpoint.  The service is treated as an opaque
// remote: this client only knows its two REST calls.
type MediaClient struct {
	cloud  string
	key    string
	secret string
	base   string // overridable in tests
	http   *http.Client
}

// NewMediaClient builds a client from the configured credentials.
func NewMediaClient(cfg config.Config) *MediaClient {
	return &MediaClient{
		cloud:  cfg.MediaCloudName,
		key:    cfg.MediaAPIKey,
		secret: cfg.MediaAPISecret,
		base:   "https://api.cloudinary.com/v1_1",
		http:   &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

func (m *MediaClient) configured() bool {
	return m.cloud != "" && m.key != "" && m.secret != ""
}

// Upload stores an image under the given folder with a fixed public id so
// that each folder holds exactly one current image (repeat uploads
// overwrite).  It returns the hosted URL of the stored image.
func (m *MediaClient) Upload(ctx context.Context, folder string, file io.Reader, filename string) (string, error) {
	if !m.configured() {
		return "", ErrMediaNotConfigured
	}

	params := map[string]string{
		"folder":    folder,
		"public_id": "default",
		"overwrite": "true",
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range params {
		if err := w.WriteField(k, v); err != nil {
			return "", err
		}
	}
	if err := w.WriteField("api_key", m.key); err != nil {
		return "", err
	}
	if err := w.WriteField("signature", m.sign(params)); err != nil {
		return "", err
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s/image/upload", m.base, m.cloud)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := m.http.Do(req)
	if err != nil {
		return "", &RemoteCallError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RemoteCallError{Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &RemoteCallError{Status: resp.StatusCode, Body: truncate(raw)}
	}
	var out struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &RemoteCallError{Status: resp.StatusCode, Body: truncate(raw), Err: err}
	}
	return out.SecureURL, nil
}

// LatestImage returns the URL of the most recently uploaded image in a
// folder, or the empty string when the folder holds none.
func (m *MediaClient) LatestImage(ctx context.Context, folder string) (string, error) {
	if !m.configured() {
		return "", ErrMediaNotConfigured
	}

	payload, err := json.Marshal(map[string]any{
		"expression":  "folder:" + folder,
		"sort_by":     []map[string]string{{"uploaded_at": "desc"}},
		"max_results": 1,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s/resources/search", m.base, m.cloud)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(payload)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(m.key, m.secret)

	resp, err := m.http.Do(req)
	if err != nil {
		return "", &RemoteCallError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RemoteCallError{Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &RemoteCallError{Status: resp.StatusCode, Body: truncate(raw)}
	}
	var out struct {
		Resources []struct {
			SecureURL string `json:"secure_url"`
		} `json:"resources"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &RemoteCallError{Status: resp.StatusCode, Body: truncate(raw), Err: err}
	}
	if len(out.Resources) == 0 {
		return "", nil
	}
	return out.Resources[0].SecureURL, nil
}

// sign produces the request signature the media service expects: the
// sorted key=value pairs joined with '&', concatenated with the API
// secret and hashed with SHA-1.
func (m *MediaClient) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + m.secret))
	return hex.EncodeToString(sum[:])
}
