package services

import (
	"alba/entity"
	"context"
)

type Database interface {
	WriteLogMessage(ctx context.Context, data Data) error

	SaveCallback(ctx context.Context, callback *entity.Callback) error
	GetCallback(ctx context.Context, tid string) (*entity.Callback, error)
}

type Data interface {
	DataType() string
}
