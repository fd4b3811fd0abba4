// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Command convert copies a jsondb folder into a kvdb file.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/db/jsondb"
	"github.com/quixsi/luxeplate/internal/db/kvdb"
)

func main() {
	var (
		inputPath  = flag.String("input-path", "testdata", "jsondb folder to read")
		outputPath = flag.String("output-path", "output.db", "kvdb file to write")
	)
	flag.Parse()

	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{})
	logger := slog.New(jsonHandler)
	slog.SetDefault(logger)

	jdb, err := jsondb.Open(*inputPath)
	if err != nil {
		logger.Error("could not open jsondb", "path", *inputPath, "error", err)
		os.Exit(1)
	}
	kdb, err := kvdb.Open(*outputPath)
	if err != nil {
		logger.Error("could not open kvdb", "path", *outputPath, "error", err)
		os.Exit(1)
	}

	logger.Info("start converting")
	if err := into(context.Background(), logger, kdb, jdb); err != nil {
		logger.Error("conversion failed", "error", err)
		os.Exit(1)
	}
	logger.Info("finished converting")
}

// into copies every record of src into dst. Records dst already holds are
// replaced where the store supports it and skipped otherwise.
func into(ctx context.Context, logger *slog.Logger, dst, src db.Database) error {
	defer src.Close()
	defer dst.Close()

	chefs, err := src.ListChefs(ctx)
	if err != nil {
		return err
	}
	for _, c := range chefs {
		if err := dst.SaveChef(ctx, c); err != nil {
			return err
		}
	}

	users, err := src.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		_, err := dst.CreateUser(ctx, u)
		if errors.Is(err, db.ErrAlreadyExists) {
			err = dst.UpdateUser(ctx, u)
		}
		if err != nil {
			logger.Warn("skip user", "user", u.ID, "email", u.Email, "error", err)
		}
	}

	bookings, err := src.ListBookings(ctx)
	if err != nil {
		return err
	}
	for _, b := range bookings {
		if err := dst.CreateBooking(ctx, b); err != nil && !errors.Is(err, db.ErrAlreadyExists) {
			return err
		}
	}

	jobs, err := src.ListJobs(ctx)
	if err != nil {
		return err
	}
	for _, j := range jobs {
		if err := dst.CreateJob(ctx, j); err != nil {
			return err
		}
	}
	contracts, err := src.ListContracts(ctx)
	if err != nil {
		return err
	}
	for _, c := range contracts {
		if err := dst.CreateContract(ctx, c); err != nil {
			return err
		}
	}

	logger.Info("copied", "chefs", len(chefs), "users", len(users), "bookings", len(bookings), "jobs", len(jobs), "contracts", len(contracts))
	return nil
}
