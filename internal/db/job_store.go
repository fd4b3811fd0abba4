// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/quixsi/luxeplate/internal/model"
)

type JobStore interface {
	ListJobs(context.Context) ([]*model.JobPosting, error)
	CreateJob(context.Context, *model.JobPosting) error
	ListContracts(context.Context) ([]*model.Contract, error)
	CreateContract(context.Context, *model.Contract) error
}
