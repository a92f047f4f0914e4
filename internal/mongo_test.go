package internal

import (
	"alba/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMongoClient_Disabled(t *testing.T) {
	conf := &config.Config{}

	client, err := NewMongoClient(conf)
	assert.ErrorIs(t, err, ErrMongoDisabled)
	assert.Nil(t, client)
}

func TestNewMongoClient_Enabled(t *testing.T) {
	conf := &config.Config{}
	conf.Mongo.Enabled = true
	conf.Mongo.Host = "127.0.0.1"
	conf.Mongo.Port = "27017"
	conf.Mongo.User = "admin"
	conf.Mongo.Password = "pass"
	conf.Mongo.Database = "alba"

	client, err := NewMongoClient(conf)
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, "alba", client.database)
	require.NotNil(t, client.clientOptions.Auth)
	assert.Equal(t, "admin", client.clientOptions.Auth.Username)
}
