package server

import (
	"Moodgraph/handler"
	"Moodgraph/socket"
)

type Handlers struct {
	Board     *handler.Board
	Note      *handler.Note
	Generate  *handler.Generate
	Websocket *socket.Handler
}
