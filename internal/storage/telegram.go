package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"atelier-backend/internal/apperr"
	"atelier-backend/internal/logging"
)

// TelegramBackend relays images through a Telegram bot chat. The locator is
// the Bot API file_id; it is not a public URL, so ResolveURL performs the
// second getFile call. Deleting requires a message id the locator does not
// carry, so Delete is a no-op that reports failure and the remote copy is
// orphaned. A documented limitation of the relay, not a crash.
type TelegramBackend struct {
	apiURL     string
	fileURL    string
	chatID     string
	httpClient *http.Client
}

func NewTelegramBackend(botToken, chatID string) *TelegramBackend {
	return &TelegramBackend{
		apiURL:  "https://api.telegram.org/bot" + botToken,
		fileURL: "https://api.telegram.org/file/bot" + botToken,
		chatID:  chatID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type telegramPhotoSize struct {
	FileID   string `json:"file_id"`
	FileSize int64  `json:"file_size"`
}

type sendPhotoResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		MessageID int                 `json:"message_id"`
		Photo     []telegramPhotoSize `json:"photo"`
	} `json:"result"`
	Description string `json:"description"`
}

type getFileResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		FilePath string `json:"file_path"`
	} `json:"result"`
	Description string `json:"description"`
}

func (b *TelegramBackend) Save(ctx context.Context, content []byte, originalFilename, ownerID string) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("chat_id", b.chatID); err != nil {
		return "", apperr.Dependency("failed to build upload form")
	}
	if err := form.WriteField("caption", ownerID); err != nil {
		return "", apperr.Dependency("failed to build upload form")
	}
	part, err := form.CreateFormFile("photo", "photo.jpg")
	if err != nil {
		return "", apperr.Dependency("failed to build upload form")
	}
	if _, err := part.Write(content); err != nil {
		return "", apperr.Dependency("failed to build upload form")
	}
	form.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.apiURL+"/sendPhoto", &body)
	if err != nil {
		return "", apperr.Dependency("failed to build upload request")
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var result sendPhotoResponse
	if err := b.do(req, &result); err != nil {
		return "", err
	}
	if !result.OK || len(result.Result.Photo) == 0 {
		return "", apperr.Dependency("telegram rejected the upload: %s", result.Description)
	}

	// Telegram returns several sizes; keep the largest.
	largest := result.Result.Photo[0]
	for _, p := range result.Result.Photo[1:] {
		if p.FileSize > largest.FileSize {
			largest = p
		}
	}
	return largest.FileID, nil
}

func (b *TelegramBackend) Delete(ctx context.Context, locator string) (bool, error) {
	// Deleting needs the original message id, which a bare file_id does
	// not carry. The remote copy stays behind.
	logging.LogKV("warn", "telegram delete skipped", map[string]interface{}{
		"locator": locator,
		"reason":  "message id unavailable",
	})
	return false, nil
}

func (b *TelegramBackend) ListForOwner(ctx context.Context, ownerID string) ([]string, error) {
	// The Bot API cannot enumerate uploaded files; locator ownership lives
	// in the catalog item document instead.
	return []string{}, nil
}

// ResolveURL exchanges a file_id for a fetchable URL via getFile.
func (b *TelegramBackend) ResolveURL(ctx context.Context, locator string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		b.apiURL+"/getFile?file_id="+url.QueryEscape(locator), nil)
	if err != nil {
		return "", apperr.Dependency("failed to build resolve request")
	}

	var result getFileResponse
	if err := b.do(req, &result); err != nil {
		return "", err
	}
	if !result.OK || result.Result.FilePath == "" {
		return "", apperr.Dependency("telegram could not resolve file: %s", result.Description)
	}
	return b.fileURL + "/" + result.Result.FilePath, nil
}

func (b *TelegramBackend) do(req *http.Request, out interface{}) error {
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return apperr.Dependency("telegram request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Dependency("failed to read telegram response")
	}
	if resp.StatusCode != http.StatusOK {
		return apperr.Dependency("telegram returned status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperr.Dependency("failed to decode telegram response: %v", err)
	}
	return nil
}

var (
	_ Backend     = (*TelegramBackend)(nil)
	_ URLResolver = (*TelegramBackend)(nil)
)

// SetAPIBase points the backend at a different API host; tests use it to
// talk to a mock server.
func (b *TelegramBackend) SetAPIBase(api, file string) {
	b.apiURL = api
	b.fileURL = file
}

func (b *TelegramBackend) String() string {
	return fmt.Sprintf("telegram(chat=%s)", b.chatID)
}
