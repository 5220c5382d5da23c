// Package sync выгружает изменения рабочей копии в удаленное хранилище
// и загружает из него снимок.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	gosync "sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/tourplan/internal/client/api"
	"github.com/iudanet/tourplan/internal/client/changeset"
	"github.com/iudanet/tourplan/internal/client/snapshot"
	"github.com/iudanet/tourplan/internal/models"
)

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс движка синхронизации
type Service interface {
	// Fetch загружает все типы записей и делает их новой базой
	Fetch(ctx context.Context) (*FetchReport, error)

	// Changeset вычисляет разницу между original и working
	Changeset() (*changeset.Changeset, error)

	// Upload выгружает changeset в два этапа
	Upload(ctx context.Context, cs *changeset.Changeset) (*UploadResult, error)

	// Save = Changeset + Upload + rebase
	Save(ctx context.Context) (*UploadResult, error)

	// Working возвращает рабочую копию для слоя редактирования
	Working() *snapshot.Snapshot

	// Original возвращает копию базового снимка
	Original() *snapshot.Snapshot
}

// Этапы выгрузки: сначала родительские типы, затем зависимые
var (
	StageA = []models.Kind{models.KindWorker, models.KindClient, models.KindLocation, models.KindTour}
	StageB = []models.Kind{models.KindWorkerAvailability, models.KindClientAvailability, models.KindTourElement}
)

// DefaultCallTimeout ограничивает один вызов удаленного хранилища
const DefaultCallTimeout = 30 * time.Second

// Config настройки движка
type Config struct {
	CallTimeout time.Duration
}

type service struct {
	remote RemoteStore
	store  *snapshot.Store
	logger *slog.Logger
	cfg    Config
}

// NewService creates a new sync service
func NewService(remote RemoteStore, store *snapshot.Store, cfg Config, logger *slog.Logger) Service {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}
	return &service{
		remote: remote,
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *service) Working() *snapshot.Snapshot  { return s.store.Working() }
func (s *service) Original() *snapshot.Snapshot { return s.store.Original() }

func (s *service) Changeset() (*changeset.Changeset, error) {
	original, working, err := s.store.Snapshots()
	if err != nil {
		return nil, err
	}
	return changeset.Compute(original, working), nil
}

// Save computes the changeset, uploads it and re-baselines original.
// After a clean upload original becomes a copy of working; otherwise only
// acknowledged operations are applied so failed records are diffed again.
func (s *service) Save(ctx context.Context) (*UploadResult, error) {
	original, working, err := s.store.Snapshots()
	if err != nil {
		return nil, err
	}
	for _, violation := range working.Verify() {
		s.logger.Warn("Working copy invariant violated", "error", violation)
	}

	cs := changeset.Compute(original, working)
	if cs.Empty() {
		s.logger.Info("Nothing to upload")
		return &UploadResult{SuccessCount: len(models.AllKinds), Journal: &snapshot.Journal{}}, nil
	}

	result, uploadErr := s.Upload(ctx, cs)
	if uploadErr != nil || len(result.Errors) > 0 {
		if err := s.store.RebaseCommitted(result.Journal); err != nil {
			return result, errors.Join(uploadErr, fmt.Errorf("failed to rebase: %w", err))
		}
		return result, uploadErr
	}

	if err := s.store.Rebase(); err != nil {
		return result, fmt.Errorf("failed to rebase: %w", err)
	}
	return result, nil
}

// Upload pushes the changeset in two stages. Kinds inside a stage run concurrently,
// records of one kind run sequentially. Validation errors are collected per record;
// any other error stops the upload once the current stage has settled.
func (s *service) Upload(ctx context.Context, cs *changeset.Changeset) (*UploadResult, error) {
	s.logger.Info("Starting upload", "changes", cs.String())

	result := &UploadResult{Journal: &snapshot.Journal{}}

	// Родители, удаленные на этапе A. Каждый тип пишет только в свою карту.
	destroyed := make(map[models.Kind]map[int64]bool, len(StageA))
	for _, kind := range StageA {
		destroyed[kind] = make(map[int64]bool)
	}

	for i, stage := range [][]models.Kind{StageA, StageB} {
		results, err := s.runStage(ctx, stage, cs, destroyed, result.Journal)
		for _, kr := range results {
			result.add(kr)
		}
		if err != nil {
			s.logger.Error("Upload aborted", "stage", i+1, "error", err)
			return result, err
		}
	}

	s.logger.Info("Upload finished",
		"success_count", result.SuccessCount,
		"errors", len(result.Errors),
		"operations", result.Journal.Len(),
	)
	return result, nil
}

// runStage запускает типы этапа параллельно и ждет завершения всех,
// даже если один из них получил инфраструктурную ошибку.
func (s *service) runStage(
	ctx context.Context,
	kinds []models.Kind,
	cs *changeset.Changeset,
	destroyed map[models.Kind]map[int64]bool,
	journal *snapshot.Journal,
) ([]KindResult, error) {
	results := make([]KindResult, len(kinds))

	var g errgroup.Group
	for i, kind := range kinds {
		g.Go(func() error {
			kr, err := s.uploadKind(ctx, cs.ForKind(kind), destroyed, journal)
			if err != nil {
				kr.Aborted = true
			}
			results[i] = kr
			return err
		})
	}
	err := g.Wait()
	return results, err
}

type idChange struct {
	oldID int64
	newID int64
}

func (s *service) uploadKind(
	ctx context.Context,
	kc changeset.KindChangeset,
	destroyed map[models.Kind]map[int64]bool,
	journal *snapshot.Journal,
) (KindResult, error) {
	kind := kc.Kind
	res := KindResult{Kind: kind}
	log := s.logger.With("kind", kind)

	// fail разделяет ошибки валидации (собираются) и инфраструктурные (прерывают выгрузку)
	fail := func(e models.Entity, op string, err error) error {
		var ve *api.ValidationError
		if errors.As(err, &ve) {
			log.Warn("Record rejected", "op", op, "id", e.GetID(), "error", ve)
			res.Errors = append(res.Errors, ve.Error())
			return nil
		}
		return fmt.Errorf("%s %s %d: %w", op, kind, e.GetID(), err)
	}

	// 1. Создание, новые id собираются
	var changes []idChange
	reconcile := func() error {
		for _, ch := range changes {
			n, err := s.store.ReconcileID(kind, ch.oldID, ch.newID)
			if err != nil {
				return fmt.Errorf("reconcile %s %d -> %d: %w", kind, ch.oldID, ch.newID, err)
			}
			journal.Record(snapshot.Op{Kind: kind, Type: snapshot.OpCreate, ID: ch.newID, OldID: ch.oldID})
			log.Debug("Reconciled id", "old_id", ch.oldID, "new_id", ch.newID, "references", n)
		}
		changes = nil
		return nil
	}

	for _, e := range kc.Added {
		if s.skip(e, destroyed, &res) {
			continue
		}
		oldID := e.GetID()
		created, err := s.create(ctx, e)
		if err != nil {
			if err = fail(e, "create", err); err != nil {
				// созданные до сбоя записи все равно должны получить свои id
				return res, errors.Join(err, reconcile())
			}
			continue
		}
		changes = append(changes, idChange{oldID: oldID, newID: created.GetID()})
		res.Created++
	}

	// 2. Reconciliation до обновлений и до этапа B
	if err := reconcile(); err != nil {
		return res, err
	}

	// 3. Обновления
	for _, e := range kc.Changed {
		if s.skip(e, destroyed, &res) {
			continue
		}
		if err := s.update(ctx, e); err != nil {
			if err = fail(e, "update", err); err != nil {
				return res, err
			}
			continue
		}
		journal.Record(snapshot.Op{Kind: kind, Type: snapshot.OpUpdate, ID: e.GetID()})
		res.Updated++
	}

	// 4. Удаления и локальное зеркало каскада
	for _, e := range kc.Removed {
		if s.skip(e, destroyed, &res) {
			continue
		}
		id := e.GetID()
		if err := s.destroy(ctx, kind, id); err != nil {
			if err = fail(e, "destroy", err); err != nil {
				return res, err
			}
			continue
		}
		journal.Record(snapshot.Op{Kind: kind, Type: snapshot.OpDestroy, ID: id})
		res.Destroyed++

		cascaded, err := s.store.CascadeDelete(kind, id)
		if err != nil {
			return res, fmt.Errorf("cascade %s %d: %w", kind, id, err)
		}
		res.Cascaded += len(cascaded)
		if parents, ok := destroyed[kind]; ok {
			parents[id] = true
		}
	}

	if len(res.Errors) > 0 {
		log.Warn("Kind uploaded with errors", "errors", len(res.Errors))
	} else {
		log.Debug("Kind uploaded", "created", res.Created, "updated", res.Updated, "destroyed", res.Destroyed)
	}
	return res, nil
}

// skip reports whether the record belongs to a parent destroyed in stage A.
// The remote store already removed it together with the parent.
func (s *service) skip(e models.Entity, destroyed map[models.Kind]map[int64]bool, res *KindResult) bool {
	for _, rel := range models.RelationsTo(e.Kind()) {
		if !rel.Cascade {
			continue
		}
		for _, parentID := range rel.ParentIDs(e) {
			if destroyed[rel.Parent][parentID] {
				res.Skipped++
				return true
			}
		}
	}
	return false
}

func (s *service) create(ctx context.Context, e models.Entity) (models.Entity, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()
	created, err := s.remote.Create(callCtx, e)
	if err != nil {
		return nil, err
	}
	// без серверного id reconciliation перепишет ссылки на мусор
	if created == nil || created.GetID() <= 0 {
		return nil, fmt.Errorf("%w: no server id in created record", api.ErrMalformedResponse)
	}
	return created, nil
}

func (s *service) update(ctx context.Context, e models.Entity) error {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()
	_, err := s.remote.Update(callCtx, e)
	return err
}

func (s *service) destroy(ctx context.Context, kind models.Kind, id int64) error {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()
	return s.remote.Destroy(callCtx, kind, id)
}

// Fetch загружает все типы параллельно. Ошибка одного типа не прерывает
// остальные: тип помечается отсутствующим. Матрица времени в пути
// запрашивается после локаций, так как ей нужны их id.
func (s *service) Fetch(ctx context.Context) (*FetchReport, error) {
	s.logger.Info("Fetching snapshot")

	fetched := &snapshot.Fetched{
		Records: make(map[models.Kind][]models.Entity, len(models.AllKinds)),
		Failed:  make(map[models.Kind]error),
	}
	report := &FetchReport{
		Loaded: make(map[models.Kind]int, len(models.AllKinds)),
		Failed: fetched.Failed,
	}

	var mu gosync.Mutex
	var g errgroup.Group
	for _, kind := range models.AllKinds {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
			records, err := s.remote.List(callCtx, kind)
			cancel()

			mu.Lock()
			if err != nil {
				fetched.Failed[kind] = err
				s.logger.Warn("Failed to fetch kind", "kind", kind, "error", err)
			} else {
				fetched.Records[kind] = records
				report.Loaded[kind] = len(records)
			}
			mu.Unlock()

			if kind == models.KindLocation && err == nil {
				s.fetchDrivingTimes(ctx, records, fetched, report, &mu)
			}
			return nil
		})
	}
	g.Go(func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
		defer cancel()
		base, err := s.remote.BaseLocation(callCtx)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			report.BaseLocationErr = err
			s.logger.Warn("Failed to fetch base location", "error", err)
			return nil
		}
		fetched.BaseLocation = base
		return nil
	})
	_ = g.Wait()

	if err := s.store.LoadSnapshot(fetched); err != nil {
		return report, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if err := s.store.Rebase(); err != nil {
		return report, fmt.Errorf("failed to rebase: %w", err)
	}

	s.logger.Info("Snapshot fetched", "failed_kinds", len(fetched.Failed))
	return report, nil
}

func (s *service) fetchDrivingTimes(
	ctx context.Context,
	locations []models.Entity,
	fetched *snapshot.Fetched,
	report *FetchReport,
	mu *gosync.Mutex,
) {
	if len(locations) == 0 {
		return
	}
	ids := make([]int64, 0, len(locations))
	for _, l := range locations {
		ids = append(ids, l.GetID())
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()
	matrix, err := s.remote.DrivingTimeMatrix(callCtx, ids)

	mu.Lock()
	defer mu.Unlock()
	if err != nil {
		report.DrivingTimesErr = err
		s.logger.Warn("Failed to fetch driving time matrix", "error", err)
		return
	}
	fetched.DrivingTimes = matrix
}
