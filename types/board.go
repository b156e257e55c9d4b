package types

// CreateBoardRequest 创建看板
type CreateBoardRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// UpdateBoardRequest 部分更新，nil 字段保持原值
type UpdateBoardRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
}

// PresenceResponse 房间在看人数
type PresenceResponse struct {
	BoardID int64 `json:"board_id"`
	Viewers int64 `json:"viewers"`
}
