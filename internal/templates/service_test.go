package templates

import (
	"context"
	"fmt"
	"testing"

	"github.com/lien-travel/planner-backend/internal/locations"
	"github.com/lien-travel/planner-backend/pkg/db/dbtest"
	"github.com/lien-travel/planner-backend/pkg/db/models"
	"github.com/lien-travel/planner-backend/pkg/enums"
	pkgerrors "github.com/lien-travel/planner-backend/pkg/errors"
	"github.com/lien-travel/planner-backend/pkg/pagination"
	"github.com/lien-travel/planner-backend/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc    Service
	conn   *gorm.DB
	owner  *models.User
	other  *models.User
	hotel  *models.Location
	temple *models.Location
	market *models.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client, conn := dbtest.Client(t)
	svc, err := NewService(ServiceParams{
		Repo:      NewRepository(conn),
		Locations: locations.NewRepository(conn),
		Tx:        client,
	})
	require.NoError(t, err)

	f := &fixture{
		svc:   svc,
		conn:  conn,
		owner: dbtest.SeedUser(t, conn, "alice"),
		other: dbtest.SeedUser(t, conn, "bob"),
	}
	f.hotel = f.seedLocation(t, &f.owner.ID, "Riverside Hotel", enums.LocationCategoryHotel, false)
	f.temple = f.seedLocation(t, nil, "Wat Pho", enums.LocationCategoryAttraction, true)
	f.market = f.seedLocation(t, &f.other.ID, "Bob's Market", enums.LocationCategoryShopping, false)
	return f
}

func (f *fixture) seedLocation(t *testing.T, owner *uint, name string, category enums.LocationCategory, public bool) *models.Location {
	t.Helper()
	loc := &models.Location{
		OwnerID:   owner,
		Name:      name,
		Category:  category,
		Latitude:  13.74,
		Longitude: 100.49,
		Address:   name + " address",
		IsPublic:  public,
	}
	require.NoError(t, f.conn.Create(loc).Error)
	return loc
}

func date(t *testing.T, value string) types.Date {
	t.Helper()
	d, err := types.ParseDate(value)
	require.NoError(t, err)
	return d
}

func strPtr(v string) *string { return &v }
func uintPtr(v uint) *uint   { return &v }

func (f *fixture) createTemplate(t *testing.T, title string, totalDays int) *TemplateView {
	t.Helper()
	view, err := f.svc.Create(context.Background(), f.owner.ID, TemplateInput{
		Title:         title,
		Destination:   "Bangkok",
		StartDate:     date(t, "2026-03-01"),
		EndDate:       date(t, "2026-03-05"),
		TotalDays:     totalDays,
		Accommodation: strPtr("Riverside Hotel"),
	})
	require.NoError(t, err)
	return view
}

func (f *fixture) addDay(t *testing.T, templateID uint, number int) *DayView {
	t.Helper()
	day, err := f.svc.AddDaySchedule(context.Background(), f.owner.ID, templateID, DayInput{
		DayNumber: number,
		Date:      date(t, "2026-03-01"),
		Title:     "Arrival",
		Color:     strPtr("#ff0000"),
	})
	require.NoError(t, err)
	return day
}

func (f *fixture) addActivity(t *testing.T, templateID, dayID uint, input ActivityInput) *ActivityView {
	t.Helper()
	activity, err := f.svc.AddActivity(context.Background(), f.owner.ID, templateID, dayID, input)
	require.NoError(t, err)
	return activity
}

func codeOf(err error) pkgerrors.Code {
	return pkgerrors.As(err).Code()
}

func countRows(t *testing.T, conn *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Model(model).Where(where, args...).Count(&n).Error)
	return n
}

func TestNewServiceRequiresDeps(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
	_, err = NewService(ServiceParams{Repo: NewRepository(nil)})
	require.Error(t, err)
	_, err = NewService(ServiceParams{Repo: NewRepository(nil), Locations: locations.NewRepository(nil)})
	require.Error(t, err)
}

func TestTemplateRoundTripAndWholesaleUpdate(t *testing.T) {
	f := newFixture(t)
	created := f.createTemplate(t, "Bangkok Trip", 5)

	got, err := f.svc.Get(context.Background(), f.owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bangkok Trip", got.Title)
	assert.Equal(t, "Bangkok", got.Destination)
	assert.Equal(t, "2026-03-01", got.StartDate.String())
	assert.Equal(t, "2026-03-05", got.EndDate.String())
	assert.Equal(t, 5, got.TotalDays)
	require.NotNil(t, got.Accommodation)
	assert.Equal(t, "Riverside Hotel", *got.Accommodation)
	assert.Nil(t, got.Transportation)

	_, err = f.svc.Update(context.Background(), f.owner.ID, created.ID, TemplateInput{
		Title:          "Chiang Mai Trip",
		Destination:    "Chiang Mai",
		StartDate:      date(t, "2026-04-10"),
		EndDate:        date(t, "2026-04-12"),
		TotalDays:      3,
		Transportation: strPtr("train"),
	})
	require.NoError(t, err)

	got, err = f.svc.Get(context.Background(), f.owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chiang Mai Trip", got.Title)
	assert.Equal(t, "Chiang Mai", got.Destination)
	assert.Equal(t, "2026-04-10", got.StartDate.String())
	assert.Equal(t, "2026-04-12", got.EndDate.String())
	assert.Equal(t, 3, got.TotalDays)
	assert.Nil(t, got.Accommodation, "omitted accommodation must not keep the stale value")
	require.NotNil(t, got.Transportation)
	assert.Equal(t, "train", *got.Transportation)
}

func TestTemplateValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), f.owner.ID, TemplateInput{
		Title:       "Backwards",
		Destination: "Bangkok",
		StartDate:   date(t, "2026-03-05"),
		EndDate:     date(t, "2026-03-01"),
		TotalDays:   1,
	})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(err))

	_, err = f.svc.Create(context.Background(), f.owner.ID, TemplateInput{
		Title:       "Zero",
		Destination: "Bangkok",
		StartDate:   date(t, "2026-03-01"),
		EndDate:     date(t, "2026-03-01"),
		TotalDays:   0,
	})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(err))
}

func TestTemplateOwnershipIsStrict(t *testing.T) {
	f := newFixture(t)
	created := f.createTemplate(t, "Private", 2)

	_, err := f.svc.Get(context.Background(), f.other.ID, created.ID)
	assert.Equal(t, pkgerrors.CodeForbidden, codeOf(err))
	_, err = f.svc.GetDetail(context.Background(), f.other.ID, created.ID)
	assert.Equal(t, pkgerrors.CodeForbidden, codeOf(err))
	err = f.svc.Delete(context.Background(), f.other.ID, created.ID)
	assert.Equal(t, pkgerrors.CodeForbidden, codeOf(err))
	_, err = f.svc.AddDaySchedule(context.Background(), f.other.ID, created.ID, DayInput{DayNumber: 1, Date: date(t, "2026-03-01"), Title: "x"})
	assert.Equal(t, pkgerrors.CodeForbidden, codeOf(err))

	_, err = f.svc.Get(context.Background(), f.owner.ID, 9999)
	assert.Equal(t, pkgerrors.CodeNotFound, codeOf(err))
}

func TestListPaginatesOwnTemplatesNewestFirst(t *testing.T) {
	f := newFixture(t)
	var ids []uint
	for _, title := range []string{"one", "two", "three"} {
		ids = append(ids, f.createTemplate(t, title, 1).ID)
	}
	_, err := f.svc.Create(context.Background(), f.other.ID, TemplateInput{
		Title: "not mine", Destination: "x", StartDate: date(t, "2026-01-01"), EndDate: date(t, "2026-01-01"), TotalDays: 1,
	})
	require.NoError(t, err)

	page, err := f.svc.List(context.Background(), f.owner.ID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, ids[2], page.Items[0].ID)
	assert.Equal(t, ids[1], page.Items[1].ID)
	require.NotEmpty(t, page.NextCursor)

	next, err := f.svc.List(context.Background(), f.owner.ID, pagination.Params{Limit: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, next.Items, 1)
	assert.Equal(t, ids[0], next.Items[0].ID)
	assert.Empty(t, next.NextCursor)

	_, err = f.svc.List(context.Background(), f.owner.ID, pagination.Params{Cursor: "not-a-cursor"})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(err))
}

func TestBangkokTripDetailEndToEnd(t *testing.T) {
	f := newFixture(t)
	trip := f.createTemplate(t, "Bangkok Trip", 5)
	day := f.addDay(t, trip.ID, 1)
	f.addActivity(t, trip.ID, day.ID, ActivityInput{
		Time:        "09:00",
		Description: "Temple visit",
		LocationID:  f.temple.ID,
	})

	detail, err := f.svc.GetDetail(context.Background(), f.owner.ID, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bangkok Trip", detail.Template.Title)
	assert.Equal(t, 5, detail.Template.TotalDays)
	require.Len(t, detail.DaySchedules, 1)
	require.Len(t, detail.DaySchedules[0].Activities, 1)

	embedded := detail.DaySchedules[0].Activities[0].Location
	require.NotNil(t, embedded)
	assert.Equal(t, f.temple.ID, embedded.ID)
	assert.Equal(t, f.temple.Name, embedded.Name)
	assert.Equal(t, f.temple.Category, embedded.Category)
	assert.Equal(t, f.temple.Address, embedded.Address)
	assert.InDelta(t, f.temple.Latitude, embedded.Latitude, 1e-9)
	assert.InDelta(t, f.temple.Longitude, embedded.Longitude, 1e-9)
	assert.Nil(t, detail.DaySchedules[0].Activities[0].PreviousLocation)
	assert.Empty(t, detail.ChecklistSections)

	_, err = f.svc.GetDetail(context.Background(), f.other.ID, trip.ID)
	assert.Equal(t, pkgerrors.CodeForbidden, codeOf(err))
}

func TestChecklistSectionUpdateReplacesItemsWithFreshIDs(t *testing.T) {
	f := newFixture(t)
	trip := f.createTemplate(t, "Trip", 2)
	input := SectionInput{
		Title:      "Documents",
		Icon:       strPtr("📄"),
		OrderIndex: 0,
		Items: []ItemInput{
			{Label: "Passport", OrderIndex: 0},
			{Label: "Visa", OrderIndex: 1},
		},
	}
	section, err := f.svc.AddChecklistSection(context.Background(), f.owner.ID, trip.ID, input)
	require.NoError(t, err)
	require.Len(t, section.Items, 2)

	first, err := f.svc.UpdateChecklistSection(context.Background(), f.owner.ID, trip.ID, section.ID, input)
	require.NoError(t, err)
	second, err := f.svc.UpdateChecklistSection(context.Background(), f.owner.ID, trip.ID, section.ID, input)
	require.NoError(t, err)

	require.Len(t, first.Items, 2)
	require.Len(t, second.Items, 2)
	for i := range second.Items {
		assert.Equal(t, first.Items[i].Label, second.Items[i].Label)
		assert.NotEqual(t, first.Items[i].ID, second.Items[i].ID, "identical payloads still produce new ids")
		assert.NotEqual(t, section.Items[i].ID, second.Items[i].ID)
	}

	oldIDs := []uint{section.Items[0].ID, section.Items[1].ID, first.Items[0].ID, first.Items[1].ID}
	assert.Zero(t, countRows(t, f.conn, &models.ChecklistItem{}, "id IN ?", oldIDs), "replaced items must be gone")
	assert.Equal(t, int64(2), countRows(t, f.conn, &models.ChecklistItem{}, "section_id = ?", section.ID))

	shrunk, err := f.svc.UpdateChecklistSection(context.Background(), f.owner.ID, trip.ID, section.ID, SectionInput{
		Title: "Docs", OrderIndex: 3, Items: []ItemInput{{Label: "Tickets", OrderIndex: 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Docs", shrunk.Title)
	assert.Nil(t, shrunk.Icon)
	assert.Equal(t, 3, shrunk.OrderIndex)
	require.Len(t, shrunk.Items, 1)
	assert.Equal(t, "Tickets", shrunk.Items[0].Label)
}

func TestChildPathMismatchIsInconsistent(t *testing.T) {
	f := newFixture(t)
	tripA := f.createTemplate(t, "A", 2)
	tripB := f.createTemplate(t, "B", 2)
	dayA := f.addDay(t, tripA.ID, 1)
	dayA2 := f.addDay(t, tripA.ID, 2)
	activity := f.addActivity(t, tripA.ID, dayA.ID, ActivityInput{Time: "10:00", Description: "x", LocationID: f.temple.ID})
	section, err := f.svc.AddChecklistSection(context.Background(), f.owner.ID, tripA.ID, SectionInput{Title: "S", Items: []ItemInput{{Label: "a"}}})
	require.NoError(t, err)

	_, err = f.svc.UpdateDaySchedule(context.Background(), f.owner.ID, tripB.ID, dayA.ID, DayInput{DayNumber: 1, Date: date(t, "2026-03-01"), Title: "x"})
	assert.Equal(t, pkgerrors.CodeInconsistent, codeOf(err))

	err = f.svc.DeleteChecklistSection(context.Background(), f.owner.ID, tripB.ID, section.ID)
	assert.Equal(t, pkgerrors.CodeInconsistent, codeOf(err))

	_, err = f.svc.UpdateActivity(context.Background(), f.owner.ID, tripA.ID, dayA2.ID, activity.ID,
		ActivityInput{Time: "11:00", Description: "y", LocationID: f.temple.ID})
	assert.Equal(t, pkgerrors.CodeInconsistent, codeOf(err))

	_, err = f.svc.AddActivity(context.Background(), f.owner.ID, tripB.ID, dayA.ID,
		ActivityInput{Time: "11:00", Description: "y", LocationID: f.temple.ID})
	assert.Equal(t, pkgerrors.CodeInconsistent, codeOf(err))

	err = f.svc.DeleteActivity(context.Background(), f.owner.ID, tripA.ID, dayA.ID, 99999)
	assert.Equal(t, pkgerrors.CodeNotFound, codeOf(err))
}

func TestAddActivityLocationResolution(t *testing.T) {
	f := newFixture(t)
	trip := f.createTemplate(t, "Trip", 2)
	day := f.addDay(t, trip.ID, 1)

	_, err := f.svc.AddActivity(context.Background(), f.owner.ID, trip.ID, day.ID, ActivityInput{
		Time: "09:00", Description: "ghost", LocationID: 4242,
	})
	assert.Equal(t, pkgerrors.CodeNotFound, codeOf(err))

	_, err = f.svc.AddActivity(context.Background(), f.owner.ID, trip.ID, day.ID, ActivityInput{
		Time: "09:00", Description: "ghost prev", LocationID: f.temple.ID, PreviousLocationID: uintPtr(4242),
	})
	assert.Equal(t, pkgerrors.CodeNotFound, codeOf(err))
	assert.Zero(t, countRows(t, f.conn, &models.Activity{}, "day_schedule_id = ?", day.ID), "failed adds write nothing")

	withPrev := f.addActivity(t, trip.ID, day.ID, ActivityInput{
		Time: "12:00", Description: "lunch", LocationID: f.market.ID, PreviousLocationID: &f.hotel.ID, OrderIndex: 1,
	})
	require.NotNil(t, withPrev.Location)
	assert.Equal(t, f.market.ID, withPrev.Location.ID, "private foreign locations may still be referenced")
	require.NotNil(t, withPrev.PreviousLocation)
	assert.Equal(t, f.hotel.ID, withPrev.PreviousLocation.ID)
}

func TestUpdateActivityPreviousLocationPolicy(t *testing.T) {
	f := newFixture(t)
	trip := f.createTemplate(t, "Trip", 2)
	day := f.addDay(t, trip.ID, 1)
	activity := f.addActivity(t, trip.ID, day.ID, ActivityInput{
		Time: "09:00", Description: "start", LocationID: f.temple.ID, PreviousLocationID: &f.hotel.ID,
	})

	t.Run("omitted keeps previous location", func(t *testing.T) {
		updated, err := f.svc.UpdateActivity(context.Background(), f.owner.ID, trip.ID, day.ID, activity.ID, ActivityInput{
			Time: "10:00", Description: "moved", LocationID: f.market.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.PreviousLocation)
		assert.Equal(t, f.hotel.ID, updated.PreviousLocation.ID)
		assert.Equal(t, f.market.ID, updated.Location.ID)
		assert.Equal(t, "10:00", updated.Time)
	})

	t.Run("zero id keeps previous location", func(t *testing.T) {
		updated, err := f.svc.UpdateActivity(context.Background(), f.owner.ID, trip.ID, day.ID, activity.ID, ActivityInput{
			Time: "10:00", Description: "moved", LocationID: f.market.ID, PreviousLocationID: uintPtr(0),
		})
		require.NoError(t, err)
		require.NotNil(t, updated.PreviousLocation)
		assert.Equal(t, f.hotel.ID, updated.PreviousLocation.ID)
	})

	t.Run("supplied id replaces previous location", func(t *testing.T) {
		updated, err := f.svc.UpdateActivity(context.Background(), f.owner.ID, trip.ID, day.ID, activity.ID, ActivityInput{
			Time: "11:00", Description: "again", LocationID: f.market.ID, PreviousLocationID: &f.temple.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.PreviousLocation)
		assert.Equal(t, f.temple.ID, updated.PreviousLocation.ID)
	})

	t.Run("unresolvable previous location aborts everything", func(t *testing.T) {
		_, err := f.svc.UpdateActivity(context.Background(), f.owner.ID, trip.ID, day.ID, activity.ID, ActivityInput{
			Time: "23:59", Description: "never", LocationID: f.hotel.ID, PreviousLocationID: uintPtr(4242),
		})
		assert.Equal(t, pkgerrors.CodeNotFound, codeOf(err))

		var stored models.Activity
		require.NoError(t, f.conn.First(&stored, activity.ID).Error)
		assert.Equal(t, "11:00", stored.Time)
		assert.Equal(t, "again", stored.Description)
		assert.Equal(t, f.market.ID, stored.LocationID)
		require.NotNil(t, stored.PreviousLocationID)
		assert.Equal(t, f.temple.ID, *stored.PreviousLocationID)
	})

	t.Run("unresolvable location aborts everything", func(t *testing.T) {
		_, err := f.svc.UpdateActivity(context.Background(), f.owner.ID, trip.ID, day.ID, activity.ID, ActivityInput{
			Time: "23:59", Description: "never", LocationID: 4242,
		})
		assert.Equal(t, pkgerrors.CodeNotFound, codeOf(err))

		var stored models.Activity
		require.NoError(t, f.conn.First(&stored, activity.ID).Error)
		assert.Equal(t, "11:00", stored.Time)
		assert.Equal(t, f.market.ID, stored.LocationID)
	})
}

func TestUpdateDayScheduleLeavesActivities(t *testing.T) {
	f := newFixture(t)
	trip := f.createTemplate(t, "Trip", 2)
	day := f.addDay(t, trip.ID, 1)
	f.addActivity(t, trip.ID, day.ID, ActivityInput{Time: "09:00", Description: "a", LocationID: f.temple.ID})

	updated, err := f.svc.UpdateDaySchedule(context.Background(), f.owner.ID, trip.ID, day.ID, DayInput{
		DayNumber: 2, Date: date(t, "2026-03-02"), Title: "Markets",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.DayNumber)
	assert.Equal(t, "2026-03-02", updated.Date.String())
	assert.Equal(t, "Markets", updated.Title)
	assert.Nil(t, updated.Color)
	require.Len(t, updated.Activities, 1)
	require.NotNil(t, updated.Activities[0].Location)
	assert.Equal(t, f.temple.ID, updated.Activities[0].Location.ID)
}

func TestDeleteDayScheduleCascadesToActivitiesOnly(t *testing.T) {
	f := newFixture(t)
	trip := f.createTemplate(t, "Trip", 2)
	day := f.addDay(t, trip.ID, 1)
	a1 := f.addActivity(t, trip.ID, day.ID, ActivityInput{Time: "09:00", Description: "a", LocationID: f.temple.ID})
	a2 := f.addActivity(t, trip.ID, day.ID, ActivityInput{Time: "10:00", Description: "b", LocationID: f.hotel.ID, PreviousLocationID: &f.temple.ID})

	require.NoError(t, f.svc.DeleteDaySchedule(context.Background(), f.owner.ID, trip.ID, day.ID))

	repo := NewRepository(f.conn)
	for _, id := range []uint{a1.ID, a2.ID} {
		_, err := repo.FindActivity(context.Background(), id)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	}
	err := f.svc.DeleteActivity(context.Background(), f.owner.ID, trip.ID, day.ID, a1.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, codeOf(err))
	assert.Equal(t, int64(3), countRows(t, f.conn, &models.Location{}, "1 = 1"), "locations are never cascaded")
}

func TestDeleteTemplateCascadesEverything(t *testing.T) {
	f := newFixture(t)
	trip := f.createTemplate(t, "Trip", 2)
	keep := f.createTemplate(t, "Keep", 1)
	day := f.addDay(t, trip.ID, 1)
	keepDay := f.addDay(t, keep.ID, 1)
	f.addActivity(t, trip.ID, day.ID, ActivityInput{Time: "09:00", Description: "a", LocationID: f.temple.ID})
	f.addActivity(t, keep.ID, keepDay.ID, ActivityInput{Time: "09:00", Description: "a", LocationID: f.temple.ID})
	_, err := f.svc.AddChecklistSection(context.Background(), f.owner.ID, trip.ID, SectionInput{
		Title: "S", Items: []ItemInput{{Label: "x"}, {Label: "y"}},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), f.owner.ID, trip.ID))

	_, err = f.svc.Get(context.Background(), f.owner.ID, trip.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, codeOf(err))
	assert.Zero(t, countRows(t, f.conn, &models.DaySchedule{}, "template_id = ?", trip.ID))
	assert.Zero(t, countRows(t, f.conn, &models.ChecklistSection{}, "template_id = ?", trip.ID))
	assert.Zero(t, countRows(t, f.conn, &models.ChecklistItem{}, "1 = 1"))
	assert.Equal(t, int64(1), countRows(t, f.conn, &models.Activity{}, "1 = 1"), "other templates keep their activities")
	assert.Equal(t, int64(3), countRows(t, f.conn, &models.Location{}, "1 = 1"))
}

func TestDeletedLocationRendersAsMissing(t *testing.T) {
	f := newFixture(t)
	trip := f.createTemplate(t, "Trip", 1)
	day := f.addDay(t, trip.ID, 1)
	f.addActivity(t, trip.ID, day.ID, ActivityInput{Time: "09:00", Description: "a", LocationID: f.hotel.ID})

	require.NoError(t, f.conn.Delete(&models.Location{}, f.hotel.ID).Error)

	detail, err := f.svc.GetDetail(context.Background(), f.owner.ID, trip.ID)
	require.NoError(t, err)
	require.Len(t, detail.DaySchedules[0].Activities, 1)
	assert.Nil(t, detail.DaySchedules[0].Activities[0].Location)
}

func TestDetailOrdersByOrderIndex(t *testing.T) {
	f := newFixture(t)
	trip := f.createTemplate(t, "Trip", 1)
	day := f.addDay(t, trip.ID, 1)
	for _, idx := range []int{3, 0, 3, 1} {
		f.addActivity(t, trip.ID, day.ID, ActivityInput{
			Time: fmt.Sprintf("%02d:00", 8+idx), Description: "x", LocationID: f.temple.ID, OrderIndex: idx,
		})
	}
	for _, idx := range []int{2, 0} {
		_, err := f.svc.AddChecklistSection(context.Background(), f.owner.ID, trip.ID, SectionInput{
			Title: "S", OrderIndex: idx, Items: []ItemInput{{Label: "b", OrderIndex: 1}, {Label: "a", OrderIndex: 0}},
		})
		require.NoError(t, err)
	}

	detail, err := f.svc.GetDetail(context.Background(), f.owner.ID, trip.ID)
	require.NoError(t, err)

	var got []int
	for _, a := range detail.DaySchedules[0].Activities {
		got = append(got, a.OrderIndex)
	}
	assert.Equal(t, []int{0, 1, 3, 3}, got)
	require.Len(t, detail.ChecklistSections, 2)
	assert.Equal(t, 0, detail.ChecklistSections[0].OrderIndex)
	assert.Equal(t, "a", detail.ChecklistSections[0].Items[0].Label)
}
