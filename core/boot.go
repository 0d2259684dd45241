package core

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/julienschmidt/httprouter"

	"github.com/itskontak/kontak/shared/datatypes"
)

var db *sqlx.DB
var dir *Directory

// DB returns the server's database connection, nil when running on the
// in-memory store.
func DB() *sqlx.DB {
	return db
}

// Dir returns the contact directory service.
func Dir() *Directory {
	return dir
}

// NewServer checks the environment, connects to the database, ensures the
// contacts schema and returns a router ready to serve.
func NewServer() (*httprouter.Router, error) {
	if err := checkRequiredEnvVars(); err != nil {
		return nil, err
	}
	var store dt.ContactStore
	if os.Getenv("KONTAK_ENV") == "test" {
		// The test suite runs without Postgres.
		store = NewMemStore()
	} else {
		var err error
		if db == nil {
			db, err = connectDB()
			if err != nil {
				return nil, fmt.Errorf("could not connect to database: %s",
					err.Error())
			}
		}
		store, err = NewPGStore(db)
		if err != nil {
			return nil, err
		}
	}
	dir = NewDirectory(store, phoneRegion())
	return newRouter(), nil
}

// phoneRegion selects the grammar used for mobile-number validation. It's a
// deployment-time setting; the original directory validated Indonesian
// numbers, so that's the default.
func phoneRegion() string {
	if r := os.Getenv("KONTAK_PHONE_REGION"); len(r) > 0 {
		return r
	}
	return "ID"
}

func checkRequiredEnvVars() error {
	port := os.Getenv("PORT")
	_, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("PORT is not set to an integer")
	}
	if os.Getenv("KONTAK_ENV") == "production" &&
		len(os.Getenv("KONTAK_DATABASE_URL")) == 0 {
		return errors.New("KONTAK_DATABASE_URL not set")
	}
	return nil
}

// connectDB opens a connection to the database.
func connectDB() (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error
	if os.Getenv("KONTAK_ENV") == "production" {
		db, err = sqlx.Connect("postgres", os.Getenv("KONTAK_DATABASE_URL"))
	} else {
		db, err = sqlx.Connect("postgres",
			"user=postgres dbname=kontak sslmode=disable")
	}
	return db, err
}
