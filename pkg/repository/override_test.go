package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OverrideTestSuite struct {
	RepositorySuite
}

func TestOverrideTestSuite(t *testing.T) {
	suite.Run(t, new(OverrideTestSuite))
}

func (suite *OverrideTestSuite) TestSetManualOverride_UpsertsMarker() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "manual_overrides" ("created_at","updated_at","deleted_at","beer_id","taproom_id") VALUES ($1,$2,$3,$4,$5) ON CONFLICT ("beer_id","taproom_id") DO UPDATE SET "updated_at"=CURRENT_TIMESTAMP RETURNING "id"`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), nil, 7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uint(1)))
	suite.mock.ExpectCommit()

	err := suite.repository.SetManualOverride(context.Background(), 7, 1)
	suite.Require().NoError(err)
}

func (suite *OverrideTestSuite) TestHasManualOverride_TrueWhenMarkerExists() {
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "manual_overrides" WHERE beer_id \= \$1 AND taproom_id \= \$2(.+)`).
		WithArgs(7, 1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "beer_id", "taproom_id"}).AddRow(uint(1), uint(7), uint(1)))

	overridden, err := suite.repository.HasManualOverride(context.Background(), 7, 1)
	suite.Require().NoError(err)
	suite.True(overridden)
}

func (suite *OverrideTestSuite) TestHasManualOverride_FalseWhenMissing() {
	suite.mock.ExpectQuery("^SELECT (.+)").WillReturnError(gorm.ErrRecordNotFound)

	overridden, err := suite.repository.HasManualOverride(context.Background(), 7, 1)
	suite.Require().NoError(err)
	suite.False(overridden)
}

func (suite *OverrideTestSuite) TestClearManualOverride_DeletesMarker() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`^UPDATE "manual_overrides" SET "deleted_at"(.+) WHERE beer_id \= \$2 AND taproom_id \= \$3(.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	err := suite.repository.ClearManualOverride(context.Background(), 7, 1)
	suite.Require().NoError(err)
}
