package sync_test

import (
	"context"
	"errors"

	"go.openly.dev/pointy"

	"droscher.com/OnTap/pkg/model"
	"droscher.com/OnTap/pkg/untappd"
)

func (suite *ManagerTestSuite) syncSingleStyledBeer(untappdID uint64, style *string) *model.Beer {
	item := beerItem(untappdID, "Styled Beer")
	item.Style = style

	suite.store.taprooms = []*model.Taproom{taproom(1, "Midtown", "menu-1")}
	suite.catalog.menus["menu-1"] = publicMenu(item)

	report := suite.manager.SyncAll(context.Background())
	suite.Require().True(report.Success)

	return suite.store.beers[untappdID]
}

func (suite *ManagerTestSuite) TestAssignStyle_ParentAndChild() {
	beer := suite.syncSingleStyledBeer(42, pointy.String("Stout - Imperial / Double Milk"))

	styles := suite.store.beerStyles[beer.ID]
	suite.Require().Len(styles, 2)
	suite.Equal("Stout", styles[0].Name)
	suite.Equal(uint(0), styles[0].ParentID)
	suite.Equal("Imperial / Double Milk", styles[1].Name)
	suite.Equal(styles[0].ID, styles[1].ParentID)
}

func (suite *ManagerTestSuite) TestAssignStyle_NoDelimiterYieldsParentOnly() {
	beer := suite.syncSingleStyledBeer(42, pointy.String("Pilsner"))

	styles := suite.store.beerStyles[beer.ID]
	suite.Require().Len(styles, 1)
	suite.Equal("Pilsner", styles[0].Name)
	suite.Equal(uint(0), styles[0].ParentID)
}

func (suite *ManagerTestSuite) TestAssignStyle_ChildScopedUnderParent() {
	stout := beerItem(1, "Dark One")
	stout.Style = pointy.String("Stout - Imperial")
	ipa := beerItem(2, "Hoppy One")
	ipa.Style = pointy.String("IPA - Imperial")

	suite.store.taprooms = []*model.Taproom{taproom(1, "Midtown", "menu-1")}
	suite.catalog.menus["menu-1"] = publicMenu(stout, ipa)

	report := suite.manager.SyncAll(context.Background())
	suite.Require().True(report.Success)

	darkStyles := suite.store.beerStyles[suite.store.beers[1].ID]
	hoppyStyles := suite.store.beerStyles[suite.store.beers[2].ID]
	suite.Require().Len(darkStyles, 2)
	suite.Require().Len(hoppyStyles, 2)

	// same child name, different parents: must be two distinct terms
	suite.Equal("Imperial", darkStyles[1].Name)
	suite.Equal("Imperial", hoppyStyles[1].Name)
	suite.NotEqual(darkStyles[1].ID, hoppyStyles[1].ID)
	suite.Equal(darkStyles[0].ID, darkStyles[1].ParentID)
	suite.Equal(hoppyStyles[0].ID, hoppyStyles[1].ParentID)
}

func (suite *ManagerTestSuite) TestAssignStyle_ReplacesPriorAssignment() {
	suite.syncSingleStyledBeer(42, pointy.String("IPA - Hazy"))

	relabeled := beerItem(42, "Styled Beer")
	relabeled.Style = pointy.String("Sour - Fruited")
	suite.catalog.menus["menu-1"] = publicMenu(relabeled)

	report := suite.manager.SyncAll(context.Background())
	suite.Require().True(report.Success)

	styles := suite.store.beerStyles[suite.store.beers[42].ID]
	suite.Require().Len(styles, 2)
	suite.Equal("Sour", styles[0].Name)
	suite.Equal("Fruited", styles[1].Name)
}

func (suite *ManagerTestSuite) TestAssignStyle_BlankStyleWarnsAndSkips() {
	beer := suite.syncSingleStyledBeer(42, pointy.String("   "))

	suite.Empty(suite.store.beerStyles[beer.ID])

	suite.Require().NotZero(suite.observedLogs.Len())
	suite.Equal("Empty style for beer", suite.observedLogs.All()[0].Message)
}

func (suite *ManagerTestSuite) TestAssignStyle_StoreFailureIsSwallowed() {
	suite.store.styleErr = errors.New("style store down")

	beer := suite.syncSingleStyledBeer(42, pointy.String("IPA - Hazy"))

	// sync still succeeds; the failed style assignment is log-only
	suite.Empty(suite.store.beerStyles[beer.ID])
}

func (suite *ManagerTestSuite) TestAssignStyle_TrailingDelimiterYieldsParentOnly() {
	beer := suite.syncSingleStyledBeer(42, pointy.String("Lager - "))

	styles := suite.store.beerStyles[beer.ID]
	suite.Require().Len(styles, 1)
	suite.Equal("Lager", styles[0].Name)
}

func (suite *ManagerTestSuite) TestAssignStyle_OnlyFirstDelimiterSplits() {
	beer := suite.syncSingleStyledBeer(42, pointy.String("IPA - New England - Hazy"))

	styles := suite.store.beerStyles[beer.ID]
	suite.Require().Len(styles, 2)
	suite.Equal("IPA", styles[0].Name)
	suite.Equal("New England - Hazy", styles[1].Name)
}

func (suite *ManagerTestSuite) TestContainerOrdering_FeedOrderBecomesSortOrder() {
	item := beerItem(42, "Flight Friendly")
	item.Containers = []untappd.Container{
		{ID: 1, Name: "12oz"},
		{ID: 2, Name: "16oz"},
		{ID: 3, Name: "Crowler"},
	}

	suite.store.taprooms = []*model.Taproom{taproom(1, "Midtown", "menu-1")}
	suite.catalog.menus["menu-1"] = publicMenu(item)

	report := suite.manager.SyncAll(context.Background())
	suite.Require().True(report.Success)
	suite.Equal(3, report.ContainersSynced)

	entry := suite.store.entries[taplistKey{beerID: 1, taproomID: 1}]
	containers := suite.store.containers[entry.ID]
	suite.Require().Len(containers, 3)
	suite.Equal([]string{"12oz", "16oz", "Crowler"}, []string{containers[0].Size, containers[1].Size, containers[2].Size})
	suite.Equal([]int{0, 1, 2}, []int{containers[0].SortOrder, containers[1].SortOrder, containers[2].SortOrder})
}
