package main

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"chaingang-server/pkg/db"
)

func main() {
	waitForDB()
	if err := db.Migrate(); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations are up to date")
}

func waitForDB() {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			dbh := func() *sql.DB {
				defer func() { _ = recover() }()
				return db.Instance()
			}()

			if dbh != nil && dbh.Ping() == nil {
				return
			}

			time.Sleep(time.Millisecond * 500)
		}
	}
}
