package snapshotrepo_test

import (
	"context"
	"testing"

	"dispatch/internal/adapters/out/postgres/snapshotrepo"
	"dispatch/internal/core/domain/model/route"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SnapshotRepositoryIntegrationTestSuite runs the snapshot repository
// against a real PostgreSQL container.
type SnapshotRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *snapshotrepo.GormSnapshotRepository
}

func (suite *SnapshotRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.db = db

	suite.repo = snapshotrepo.NewGormSnapshotRepository(db)
	suite.Require().NoError(suite.repo.Migrate(ctx))
}

func (suite *SnapshotRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE snapshot_meta, drivers, routes, route_items, pending_items").Error
	suite.Require().NoError(err)
}

func (suite *SnapshotRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *SnapshotRepositoryIntegrationTestSuite) TestLoad_NothingSaved_ReturnsEmptySnapshot() {
	snap, err := suite.repo.Load(suite.T().Context())
	suite.Require().NoError(err)
	suite.True(snap.IsEmpty())
}

func (suite *SnapshotRepositoryIntegrationTestSuite) TestSave_ThenLoad_RoundTrips() {
	ctx := suite.T().Context()
	want := fixtureSnapshot(suite.T())

	suite.Require().NoError(suite.repo.Save(ctx, want))
	got, err := suite.repo.Load(ctx)
	suite.Require().NoError(err)

	assertSnapshotsEqual(suite.T(), want, got)
}

func (suite *SnapshotRepositoryIntegrationTestSuite) TestSave_Twice_KeepsOnlyLatest() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repo.Save(ctx, fixtureSnapshot(suite.T())))

	latest := fixtureSnapshot(suite.T())
	suite.Require().NoError(latest.Routes[0].TransitionTo(route.Accepted, latest.TakenAt))
	suite.Require().NoError(suite.repo.Save(ctx, latest))

	got, err := suite.repo.Load(ctx)
	suite.Require().NoError(err)
	assertSnapshotsEqual(suite.T(), latest, got)

	var rows int64
	suite.Require().NoError(suite.db.Model(&snapshotrepo.RouteItemDTO{}).Count(&rows).Error)
	suite.Equal(int64(3), rows)
}

func (suite *SnapshotRepositoryIntegrationTestSuite) TestLoad_PreservesRouteItemOrder() {
	ctx := suite.T().Context()
	want := fixtureSnapshot(suite.T())
	suite.Require().NoError(suite.repo.Save(ctx, want))

	got, err := suite.repo.Load(ctx)
	suite.Require().NoError(err)

	wantItems := want.Routes[0].Items()
	gotItems := got.Routes[0].Items()
	suite.Require().Len(gotItems, len(wantItems))
	for i := range wantItems {
		suite.True(wantItems[i].ID().IsEqual(gotItems[i].ID()))
	}
	suite.True(got.Routes[0].HasLargeItem())
}

func TestSnapshotRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SnapshotRepositoryIntegrationTestSuite))
}
