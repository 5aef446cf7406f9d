package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
)

type StyleTestSuite struct {
	RepositorySuite
}

func TestStyleTestSuite(t *testing.T) {
	suite.Run(t, new(StyleTestSuite))
}

func (suite *StyleTestSuite) TestGetOrCreateStyle_CreatesStyle() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "styles" ("created_at","updated_at","deleted_at","name","parent_id") VALUES ($1,$2,$3,$4,$5) ON CONFLICT DO NOTHING RETURNING "id"`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), nil, "IPA", 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uint(3)))
	suite.mock.ExpectCommit()

	style, err := suite.repository.GetOrCreateStyle(context.Background(), "IPA", 0)
	suite.Require().NoError(err)
	suite.Equal(uint(3), style.ID)
	suite.Equal("IPA", style.Name)
	suite.Equal(uint(0), style.ParentID)
}

func (suite *StyleTestSuite) TestGetOrCreateStyle_ReturnsExistingOnConflict() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^INSERT INTO "styles" (.+) ON CONFLICT DO NOTHING RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	suite.mock.ExpectCommit()
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "styles" WHERE name \= \$1 AND parent_id \= \$2 (.+)`).
		WithArgs("Hazy", 3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "parent_id"}).AddRow(uint(9), "Hazy", uint(3)))

	style, err := suite.repository.GetOrCreateStyle(context.Background(), "Hazy", 3)
	suite.Require().NoError(err)
	suite.Equal(uint(9), style.ID)
	suite.Equal(uint(3), style.ParentID)
}

func (suite *StyleTestSuite) TestGetStyles_OrdersByParentThenName() {
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "styles" (.+) ORDER BY parent_id, name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "parent_id"}).
			AddRow(uint(1), "IPA", uint(0)).
			AddRow(uint(2), "Stout", uint(0)).
			AddRow(uint(3), "Hazy", uint(1)))

	styles, err := suite.repository.GetStyles(context.Background())
	suite.Require().NoError(err)
	suite.Len(styles, 3)
	suite.Equal("IPA", styles[0].Name)
	suite.Equal(uint(1), styles[2].ParentID)
}
