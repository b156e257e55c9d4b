//go:build wireinject
// +build wireinject

package main

import (
	"Moodgraph/config"
	"Moodgraph/dao"
	"Moodgraph/dao/cache"
	"Moodgraph/handler"
	"Moodgraph/pkg/client"
	"Moodgraph/pkg/database"
	"Moodgraph/pkg/llm"
	"Moodgraph/server"
	"Moodgraph/service"
	"Moodgraph/socket"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		client.NewRedisClient,
		database.NewDB,

		cache.NewRoomStorage,
		dao.NewBoardDAO,
		dao.NewNoteDAO,

		llm.NewGenerator,
		service.NewStorage,
		wire.Struct(new(service.BoardService), "*"),
		wire.Bind(new(service.IBoardService), new(*service.BoardService)),
		wire.Struct(new(service.NoteService), "*"),
		wire.Bind(new(service.INoteService), new(*service.NoteService)),

		socket.NewHub,
		socket.NewHandler,

		wire.Struct(new(handler.Board), "*"),
		wire.Struct(new(handler.Note), "*"),
		wire.Struct(new(handler.Generate), "*"),
		wire.Struct(new(server.Handlers), "*"),

		server.NewGinEngine,
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil
}
