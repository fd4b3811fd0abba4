// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/model"
)

func NewJobStore(jobsFile, contractsFile string) (*JobStore, error) {
	jobs, err := newCollection(jobsFile, db.DemoJobs())
	if err != nil {
		return nil, err
	}
	contracts, err := newCollection(contractsFile, db.DemoContracts())
	if err != nil {
		return nil, err
	}
	return &JobStore{jobs: jobs, contracts: contracts}, nil
}

type JobStore struct {
	jobs      *collection[model.JobPosting]
	contracts *collection[model.Contract]
}

func (j *JobStore) ListJobs(ctx context.Context) ([]*model.JobPosting, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListJobs")
	defer span.End()

	return j.jobs.snapshot(span, nil)
}

func (j *JobStore) CreateJob(ctx context.Context, job *model.JobPosting) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "CreateJob")
	defer span.End()

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	stored := *job
	return j.jobs.update(ctx, span, func(jobs []*model.JobPosting) ([]*model.JobPosting, error) {
		return append(jobs, &stored), nil
	})
}

func (j *JobStore) ListContracts(ctx context.Context) ([]*model.Contract, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListContracts")
	defer span.End()

	return j.contracts.snapshot(span, nil)
}

func (j *JobStore) CreateContract(ctx context.Context, contract *model.Contract) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "CreateContract")
	defer span.End()

	if contract.ID == uuid.Nil {
		contract.ID = uuid.New()
	}
	stored := *contract
	return j.contracts.update(ctx, span, func(contracts []*model.Contract) ([]*model.Contract, error) {
		return append(contracts, &stored), nil
	})
}
