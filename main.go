package main

import (
	"alba/config"
	"alba/gateway"
	"alba/internal"
	"alba/services"
	"errors"
	"flag"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

func main() {

	logger := internal.NewLogger("internal", false, nil)

	configPath := flag.String("conf", "config.yml", "path to config file")
	envPath := flag.String("env", ".env", "path to optional env file")
	flag.Parse()

	if err := godotenv.Load(*envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Error("load env file", err)
	}

	logger.Info("using config file: " + *configPath)
	conf, err := config.GetConfig(*configPath)
	if err != nil {
		logger.Error("boot", err)
		return
	}

	var mongo services.Database
	if conf.Mongo.Enabled {
		db, err := internal.NewMongoClient(conf)
		if err != nil {
			logger.Error("mongo client", err)
			return
		}
		mongo = db
		logger.Info("mongo client initialized")
	}

	profile, err := gateway.ProfileByName(conf.Gateway.Profile)
	if err != nil {
		logger.Error("gateway profile", err)
		return
	}

	client := gateway.New(conf.Gateway.ServiceId, conf.Gateway.Secret,
		gateway.WithProfile(profile),
		gateway.WithBaseURL(conf.Gateway.BaseUrl),
		gateway.WithHTTPClient(&http.Client{Timeout: conf.Gateway.Timeout}),
		gateway.WithLogger(internal.NewLogger("gateway", conf.IsDebug, mongo)),
	)
	logger.Info("gateway client initialized with profile " + profile.Name)

	server := internal.NewServer(conf)
	server.SetLogger(internal.NewLogger("server", conf.IsDebug, mongo))
	server.SetGateway(client)
	server.SetDatabase(mongo)

	err = server.Start()
	if err != nil {
		logger.Error("server start", err)
		return
	}

}
