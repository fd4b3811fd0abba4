// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/model"
)

const (
	bucketJob      = "job_store"
	bucketContract = "contract_store"
)

func NewJobStore(bdb *bolt.DB) (*JobStore, error) {
	err := createSeededBucket(bdb, bucketJob, db.DemoJobs(),
		func(j *model.JobPosting) uuid.UUID { return j.ID })
	if err != nil {
		return nil, err
	}
	return &JobStore{db: bdb}, createSeededBucket(bdb, bucketContract, db.DemoContracts(),
		func(c *model.Contract) uuid.UUID { return c.ID })
}

// JobStore holds the recruitment records of the admin area.
type JobStore struct {
	db *bolt.DB
}

func (j *JobStore) ListJobs(ctx context.Context) ([]*model.JobPosting, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListJobs")
	defer span.End()

	var jobs []*model.JobPosting
	return jobs, j.db.View(func(tx *bolt.Tx) error {
		var err error
		jobs, err = listBucket[model.JobPosting](tx, bucketJob)
		return err
	})
}

func (j *JobStore) CreateJob(ctx context.Context, job *model.JobPosting) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateJob")
	defer span.End()

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	return j.put(span, bucketJob, job.ID, job)
}

func (j *JobStore) ListContracts(ctx context.Context) ([]*model.Contract, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListContracts")
	defer span.End()

	var contracts []*model.Contract
	return contracts, j.db.View(func(tx *bolt.Tx) error {
		var err error
		contracts, err = listBucket[model.Contract](tx, bucketContract)
		return err
	})
}

func (j *JobStore) CreateContract(ctx context.Context, contract *model.Contract) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateContract")
	defer span.End()

	if contract.ID == uuid.Nil {
		contract.ID = uuid.New()
	}
	return j.put(span, bucketContract, contract.ID, contract)
}

func (j *JobStore) put(span trace.Span, bucket string, id uuid.UUID, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		span.RecordError(err)
		return err
	}
	span.AddEvent("Update bucket")
	return j.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put(id[:], data)
	})
}
