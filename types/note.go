package types

// CreateNoteRequest 创建便签，零值字段落库时取默认值
type CreateNoteRequest struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	ImageURL  string  `json:"image_url"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
	Color     string  `json:"color"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
}

// UpdateNoteRequest 部分更新，nil 字段保持原值
// 拖拽提交位置时只带 position_x / position_y
type UpdateNoteRequest struct {
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	ImageURL  *string  `json:"image_url"`
	PositionX *float64 `json:"position_x"`
	PositionY *float64 `json:"position_y"`
	Color     *string  `json:"color"`
	Width     *int     `json:"width"`
	Height    *int     `json:"height"`
}
