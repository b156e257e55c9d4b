package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"Moodgraph/models"
	"Moodgraph/types"
)

// APIError REST 调用的结构化失败
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// API 服务端 REST 契约的客户端封装
type API struct {
	baseURL string
	http    *http.Client
}

func NewAPI(baseURL string) *API {
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *API) ListBoards(ctx context.Context) ([]*models.Board, error) {
	var boards []*models.Board
	err := a.do(ctx, http.MethodGet, "/api/boards", nil, &boards)
	return boards, err
}

func (a *API) GetBoard(ctx context.Context, boardID int64) (*models.Board, error) {
	var board models.Board
	if err := a.do(ctx, http.MethodGet, fmt.Sprintf("/api/boards/%d", boardID), nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (a *API) CreateBoard(ctx context.Context, req *types.CreateBoardRequest) (*models.Board, error) {
	var board models.Board
	if err := a.do(ctx, http.MethodPost, "/api/boards", req, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (a *API) UpdateBoard(ctx context.Context, boardID int64, req *types.UpdateBoardRequest) (*models.Board, error) {
	var board models.Board
	if err := a.do(ctx, http.MethodPut, fmt.Sprintf("/api/boards/%d", boardID), req, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (a *API) DeleteBoard(ctx context.Context, boardID int64) error {
	return a.do(ctx, http.MethodDelete, fmt.Sprintf("/api/boards/%d", boardID), nil, nil)
}

func (a *API) ListNotes(ctx context.Context, boardID int64) ([]*models.Note, error) {
	var notes []*models.Note
	err := a.do(ctx, http.MethodGet, fmt.Sprintf("/api/boards/%d/notes", boardID), nil, &notes)
	return notes, err
}

func (a *API) CreateNote(ctx context.Context, boardID int64, req *types.CreateNoteRequest) (*models.Note, error) {
	var note models.Note
	if err := a.do(ctx, http.MethodPost, fmt.Sprintf("/api/boards/%d/notes", boardID), req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (a *API) UpdateNote(ctx context.Context, noteID int64, req *types.UpdateNoteRequest) (*models.Note, error) {
	var note models.Note
	if err := a.do(ctx, http.MethodPut, fmt.Sprintf("/api/notes/%d", noteID), req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNotePosition 拖拽落点提交，只带位置字段
func (a *API) UpdateNotePosition(ctx context.Context, noteID int64, x, y float64) (*models.Note, error) {
	req := &types.UpdateNoteRequest{PositionX: &x, PositionY: &y}
	return a.UpdateNote(ctx, noteID, req)
}

func (a *API) DeleteNote(ctx context.Context, noteID int64) error {
	return a.do(ctx, http.MethodDelete, fmt.Sprintf("/api/notes/%d", noteID), nil, nil)
}

func (a *API) GenerateText(ctx context.Context, prompt string) (string, error) {
	var resp types.GenerateTextResponse
	err := a.do(ctx, http.MethodPost, "/api/text/generate", &types.GenerateTextRequest{Prompt: prompt}, &resp)
	return resp.Text, err
}

func (a *API) GenerateImage(ctx context.Context, prompt string) (string, error) {
	var resp types.GenerateImageResponse
	err := a.do(ctx, http.MethodPost, "/api/images/generate", &types.GenerateImageRequest{Prompt: prompt}, &resp)
	return resp.ImageURL, err
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var failure struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(raw, &failure)
		if failure.Error == "" {
			failure.Error = string(raw)
		}
		return &APIError{Status: resp.StatusCode, Message: failure.Error}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
