package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// GenSessionID 生成 WebSocket 会话 ID
func GenSessionID() int64 {
	return node.Generate().Int64()
}
