package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/somnahealth/somna-backend/sleepservice"
)

func main() {
	// Optional driver override (postgres | sqlite); the default comes from
	// SOMNA_BACKEND_DB_DRIVER.
	dbDriver := flag.String("db-driver", "", "Override DB_DRIVER (postgres, sqlite)")
	flag.Parse()

	if *dbDriver != "" {
		if err := os.Setenv("SOMNA_BACKEND_DB_DRIVER", *dbDriver); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply db-driver override")
		}
	}

	if err := sleepservice.Run(); err != nil {
		log.Fatal().Err(err).Msg("sleep-service exited with error")
	}
}
