package clarification

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/attendance"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/clarification"
	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
)

// fakeTransactor runs the function directly; the fakes below mutate in-memory
// state, so rollback is approximated by asserting nothing was written.
type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByNIP(_ context.Context, nip string) (user.User, error) {
	u, ok := f.users[nip]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) error {
	f.users[u.NIP] = u
	return nil
}

func (f *fakeUserRepo) ListSubordinates(_ context.Context, superiorNIP string) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.SuperiorNIP != nil && *u.SuperiorNIP == superiorNIP {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NIP < out[j].NIP })
	return out, nil
}

func (f *fakeUserRepo) ListByRoles(_ context.Context, roles []user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		for _, r := range roles {
			if u.Role == r {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListStaff(_ context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.Role != user.RoleAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) SetPushSubscription(_ context.Context, nip string, sub *string) error {
	u, ok := f.users[nip]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PushSubscription = sub
	f.users[nip] = u
	return nil
}

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	rec, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByOwnerAndDate(_ context.Context, nip string, date time.Time) (attendance.Attendance, error) {
	for _, rec := range f.records {
		if rec.NIP == nip && rec.Date.Equal(date) {
			return rec, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Create(_ context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakeAttendanceRepo) ListByOwner(_ context.Context, nip string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.NIP == nip {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeAttendanceRepo) ListByOwnerAndMonth(ctx context.Context, nip string, month time.Time) ([]attendance.Attendance, error) {
	all, _ := f.ListByOwner(ctx, nip)
	var out []attendance.Attendance
	for _, rec := range all {
		if rec.Date.Year() == month.Year() && rec.Date.Month() == month.Month() {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByMonth(_ context.Context, month time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.Date.Year() == month.Year() && rec.Date.Month() == month.Month() {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) LatestMonthOf(ctx context.Context, nip string) (time.Time, error) {
	all, _ := f.ListByOwner(ctx, nip)
	if len(all) == 0 {
		return time.Time{}, attendance.ErrAttendanceNotFound
	}
	latest := all[0].Date
	return time.Date(latest.Year(), latest.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

func (f *fakeAttendanceRepo) MarkPendingApproval(_ context.Context, id string) error {
	rec, ok := f.records[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	if attendance.TagOf(rec.StatusText()) == attendance.TagPending {
		return attendance.ErrAlreadyPending
	}
	status := attendance.StatusPendingApproval
	rec.Status = &status
	f.records[id] = rec
	return nil
}

func (f *fakeAttendanceRepo) SetResolution(_ context.Context, id string, status string, remark string) error {
	rec, ok := f.records[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	rec.Status = &status
	rec.Remark = &remark
	f.records[id] = rec
	return nil
}

func (f *fakeAttendanceRepo) CountApprovedAnnualLeave(_ context.Context, nip string, year int) (int, error) {
	count := 0
	for _, rec := range f.records {
		if rec.NIP != nip || rec.Date.Year() != year {
			continue
		}
		if strings.HasPrefix(rec.StatusText(), "Approved") && strings.Contains(rec.RemarkText(), "Annual Leave") {
			count++
		}
	}
	return count, nil
}

type fakeClarificationRepo struct {
	items map[string]clarification.Clarification
}

func (f *fakeClarificationRepo) GetByID(_ context.Context, id string) (clarification.Clarification, error) {
	c, ok := f.items[id]
	if !ok {
		return clarification.Clarification{}, clarification.ErrClarificationNotFound
	}
	return c, nil
}

func (f *fakeClarificationRepo) Create(_ context.Context, c clarification.Clarification) error {
	f.items[c.ID] = c
	return nil
}

func (f *fakeClarificationRepo) Resolve(_ context.Context, id string, finalStatus string, revisionNote *string) error {
	c, ok := f.items[id]
	if !ok {
		return clarification.ErrClarificationNotFound
	}
	c.Status = finalStatus
	if revisionNote != nil {
		c.RevisionNote = revisionNote
	}
	c.CurrentApproverNIP = nil
	f.items[id] = c
	return nil
}

func (f *fakeClarificationRepo) ListByApprovers(_ context.Context, approverNIPs []string, department string) ([]clarification.Clarification, error) {
	var out []clarification.Clarification
	for _, c := range f.items {
		if c.CurrentApproverNIP == nil {
			continue
		}
		for _, nip := range approverNIPs {
			if *c.CurrentApproverNIP == nip && (department == "" || c.Department == department) {
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeClarificationRepo) ListBySubmitters(_ context.Context, nips []string) ([]clarification.Clarification, error) {
	var out []clarification.Clarification
	for _, c := range f.items {
		for _, nip := range nips {
			if c.SubmitterNIP == nip {
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (f *fakeClarificationRepo) ListApprovedByMonth(_ context.Context, month time.Time) ([]clarification.Clarification, error) {
	var out []clarification.Clarification
	for _, c := range f.items {
		if strings.HasPrefix(c.Status, "Approved") &&
			c.Date.Year() == month.Year() && c.Date.Month() == month.Month() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClarificationRepo) CountByReasonType(_ context.Context, nip string, reasonType string, month time.Time) (int, error) {
	count := 0
	for _, c := range f.items {
		if c.SubmitterNIP == nip && c.ReasonType == reasonType &&
			c.SubmittedAt.Year() == month.Year() && c.SubmittedAt.Month() == month.Month() {
			count++
		}
	}
	return count, nil
}

type sentNotification struct {
	nip   string
	title string
}

// fakeNotifier records deliveries synchronously.
type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) Notify(_ context.Context, targetNIP string, title string, _ string, _ string) {
	f.sent = append(f.sent, sentNotification{nip: targetNIP, title: title})
}

type fakeFileService struct{}

func (fakeFileService) UploadEvidence(_ context.Context, nip string, _ io.Reader, filename string) (string, error) {
	return "evidence/bukti-" + nip + "-" + filename, nil
}

func (fakeFileService) UploadLeaveLetter(_ context.Context, nip string, _ time.Time, _ io.Reader, filename string) (string, error) {
	return "leave/cuti-" + nip + "-" + filename, nil
}

func (fakeFileService) OpenFile(_ context.Context, _ string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (fakeFileService) DeleteFile(_ context.Context, _ string) error { return nil }

func (fakeFileService) FileExists(_ context.Context, _ string) (bool, error) { return true, nil }

// fixture: a lecturer reporting to a department head, plus a department
// secretary under the same head.
func newFixture() (*fakeUserRepo, *fakeAttendanceRepo, *fakeClarificationRepo, *fakeNotifier, clarification.ClarificationService) {
	kajurNIP := "1001"
	users := &fakeUserRepo{users: map[string]user.User{
		"1001": {NIP: "1001", FullName: "Head of Dept", Department: "TI", Role: user.RoleKajur},
		"2001": {NIP: "2001", FullName: "Lecturer One", Department: "TI", Role: user.RoleDosen, SuperiorNIP: &kajurNIP},
		"2002": {NIP: "2002", FullName: "Secretary", Department: "TI", Role: user.RoleSekjur, SuperiorNIP: &kajurNIP},
	}}
	records := &fakeAttendanceRepo{records: map[string]attendance.Attendance{}}
	items := &fakeClarificationRepo{items: map[string]clarification.Clarification{}}
	notifier := &fakeNotifier{}

	svc := NewClarificationService(fakeTransactor{}, items, records, users, fakeFileService{}, notifier)
	return users, records, items, notifier, svc
}

func addRecord(records *fakeAttendanceRepo, id, nip string, date time.Time, status *string) {
	records.records[id] = attendance.Attendance{ID: id, NIP: nip, Date: date, Status: status}
}

func TestSubmit_RoutesToSuperiorAndMarksPending(t *testing.T) {
	ctx := context.Background()
	_, records, items, notifier, svc := newFixture()

	day := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	addRecord(records, "rec-1", "2001", day, nil)

	resp, err := svc.Submit(ctx, clarification.SubmitRequest{
		SubmitterNIP:  "2001",
		SubmitterName: "Lecturer One",
		Department:    "TI",
		RecordIDs:     []string{"rec-1"},
		Category:      clarification.CategoryFlexible,
		ReasonType:    clarification.ReasonForgotClockOut,
	})
	require.NoError(t, err)
	require.Len(t, resp, 1)

	assert.Equal(t, clarification.StatusSubmitted, resp[0].Status)
	require.NotNil(t, resp[0].CurrentApproverNIP)
	assert.Equal(t, "1001", *resp[0].CurrentApproverNIP)
	assert.Equal(t, "rec-1", resp[0].AttendanceID)

	rec := records.records["rec-1"]
	assert.Equal(t, attendance.StatusPendingApproval, rec.StatusText())

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "1001", notifier.sent[0].nip)

	require.Len(t, items.items, 1)
}

func TestSubmit_WithoutSuperiorFails(t *testing.T) {
	ctx := context.Background()
	users, records, _, _, svc := newFixture()
	users.users["3001"] = user.User{NIP: "3001", FullName: "Orphan", Department: "TI", Role: user.RoleDosen}

	day := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	addRecord(records, "rec-1", "3001", day, nil)

	_, err := svc.Submit(ctx, clarification.SubmitRequest{
		SubmitterNIP: "3001",
		RecordIDs:    []string{"rec-1"},
		Category:     clarification.CategoryFlexible,
		ReasonType:   clarification.ReasonForgotClockIn,
	})
	assert.ErrorIs(t, err, clarification.ErrNoSuperior)
}

// A batch containing one already-pending date writes nothing at all.
func TestSubmit_DuplicatePendingBlocksWholeBatch(t *testing.T) {
	ctx := context.Background()
	_, records, items, notifier, svc := newFixture()

	day1 := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC)
	pending := attendance.StatusPendingApproval
	addRecord(records, "rec-1", "2001", day1, nil)
	addRecord(records, "rec-2", "2001", day2, &pending)

	_, err := svc.Submit(ctx, clarification.SubmitRequest{
		SubmitterNIP: "2001",
		RecordIDs:    []string{"rec-1", "rec-2"},
		Category:     clarification.CategoryNonFlexible,
		ReasonType:   clarification.ReasonForgotClockIn,
	})
	assert.ErrorIs(t, err, clarification.ErrDuplicateSubmission)

	assert.Empty(t, items.items, "no clarification may be created")
	assert.Empty(t, notifier.sent)
	assert.Equal(t, "", records.records["rec-1"].StatusText(), "untouched record must stay unresolved")
}

func TestSubmit_RejectsForeignRecords(t *testing.T) {
	ctx := context.Background()
	_, records, _, _, svc := newFixture()

	day := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	addRecord(records, "rec-1", "2002", day, nil)

	_, err := svc.Submit(ctx, clarification.SubmitRequest{
		SubmitterNIP: "2001",
		RecordIDs:    []string{"rec-1"},
		Category:     clarification.CategoryFlexible,
		ReasonType:   clarification.ReasonForgotClockIn,
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func submitOne(t *testing.T, svc clarification.ClarificationService, records *fakeAttendanceRepo, category string) string {
	t.Helper()
	day := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	addRecord(records, "rec-1", "2001", day, nil)

	resp, err := svc.Submit(context.Background(), clarification.SubmitRequest{
		SubmitterNIP:  "2001",
		SubmitterName: "Lecturer One",
		Department:    "TI",
		RecordIDs:     []string{"rec-1"},
		Category:      category,
		ReasonType:    clarification.ReasonForgotClockOut,
	})
	require.NoError(t, err)
	return resp[0].ID
}

func TestDecide_ApproveFlexibleWritesFLLetter(t *testing.T) {
	ctx := context.Background()
	_, records, _, notifier, svc := newFixture()
	id := submitOne(t, svc, records, clarification.CategoryFlexible)

	resp, err := svc.Decide(ctx, clarification.DecideRequest{
		ClarificationID: id,
		Action:          clarification.ActionApprove,
		ActorNIP:        "1001",
		ActorRole:       user.RoleKajur,
	})
	require.NoError(t, err)

	assert.Equal(t, "Approved by Kajur", resp.Status)
	assert.Nil(t, resp.CurrentApproverNIP)

	rec := records.records["rec-1"]
	assert.Equal(t, "Approved — Letter FL", rec.StatusText())
	assert.Equal(t, clarification.ReasonForgotClockOut, rec.RemarkText())

	// submit + decide
	require.Len(t, notifier.sent, 2)
	assert.Equal(t, "2001", notifier.sent[1].nip)
	assert.Equal(t, "Clarification Approved", notifier.sent[1].title)
}

func TestDecide_ApproveNonFlexibleWritesNFLetter(t *testing.T) {
	ctx := context.Background()
	_, records, _, _, svc := newFixture()
	id := submitOne(t, svc, records, clarification.CategoryNonFlexible)

	_, err := svc.Decide(ctx, clarification.DecideRequest{
		ClarificationID: id,
		Action:          clarification.ActionApprove,
		ActorNIP:        "1001",
		ActorRole:       user.RoleKajur,
	})
	require.NoError(t, err)

	assert.Equal(t, "Approved — Letter NF", records.records["rec-1"].StatusText())
}

func TestDecide_RejectWritesResubmitRemark(t *testing.T) {
	ctx := context.Background()
	_, records, items, notifier, svc := newFixture()
	id := submitOne(t, svc, records, clarification.CategoryFlexible)

	resp, err := svc.Decide(ctx, clarification.DecideRequest{
		ClarificationID: id,
		Action:          clarification.ActionReject,
		RejectionNote:   "No evidence attached",
		ActorNIP:        "1001",
		ActorRole:       user.RoleKajur,
	})
	require.NoError(t, err)

	assert.Equal(t, "Rejected by Kajur", resp.Status)
	require.NotNil(t, resp.RevisionNote)
	assert.Equal(t, "No evidence attached", *resp.RevisionNote)

	rec := records.records["rec-1"]
	assert.Equal(t, attendance.StatusRejected, rec.StatusText())
	assert.Equal(t, "No evidence attached — please resubmit", rec.RemarkText())

	stored := items.items[id]
	assert.Nil(t, stored.CurrentApproverNIP, "decision must clear the approver")

	assert.Equal(t, "Clarification Rejected", notifier.sent[len(notifier.sent)-1].title)
}

func TestDecide_TwiceFails(t *testing.T) {
	ctx := context.Background()
	_, records, _, _, svc := newFixture()
	id := submitOne(t, svc, records, clarification.CategoryFlexible)

	req := clarification.DecideRequest{
		ClarificationID: id,
		Action:          clarification.ActionApprove,
		ActorNIP:        "1001",
		ActorRole:       user.RoleKajur,
	}
	_, err := svc.Decide(ctx, req)
	require.NoError(t, err)

	_, err = svc.Decide(ctx, req)
	assert.ErrorIs(t, err, clarification.ErrAlreadyDecided)
}

func TestDecide_StrangerForbidden(t *testing.T) {
	ctx := context.Background()
	users, records, _, _, svc := newFixture()
	users.users["4001"] = user.User{NIP: "4001", FullName: "Other Head", Department: "MESIN", Role: user.RoleKajur}
	id := submitOne(t, svc, records, clarification.CategoryFlexible)

	_, err := svc.Decide(ctx, clarification.DecideRequest{
		ClarificationID: id,
		Action:          clarification.ActionApprove,
		ActorNIP:        "4001",
		ActorRole:       user.RoleKajur,
	})
	assert.ErrorIs(t, err, user.ErrApproverAccessRequired)
}

// The department secretary may decide a request addressed to the department
// head, but only within their own department.
func TestDecide_SecretaryActsForDepartmentHead(t *testing.T) {
	ctx := context.Background()
	_, records, _, _, svc := newFixture()
	id := submitOne(t, svc, records, clarification.CategoryFlexible)

	resp, err := svc.Decide(ctx, clarification.DecideRequest{
		ClarificationID: id,
		Action:          clarification.ActionApprove,
		ActorNIP:        "2002",
		ActorRole:       user.RoleSekjur,
	})
	require.NoError(t, err)
	assert.Equal(t, "Approved by Sekjur", resp.Status)
}

func TestListQueue_SecretarySeesOwnAndHeadRequests(t *testing.T) {
	ctx := context.Background()
	_, records, _, _, svc := newFixture()
	submitOne(t, svc, records, clarification.CategoryFlexible)

	// Addressed to the head; the secretary's queue picks it up.
	queue, err := svc.ListQueue(ctx, "2002", user.RoleSekjur, "TI")
	require.NoError(t, err)
	assert.Len(t, queue, 1)

	// A head from another department sees nothing.
	queue, err = svc.ListQueue(ctx, "4001", user.RoleKajur, "MESIN")
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestListQueue_NonApproverForbidden(t *testing.T) {
	_, _, _, _, svc := newFixture()
	_, err := svc.ListQueue(context.Background(), "2001", user.RoleDosen, "TI")
	assert.ErrorIs(t, err, user.ErrApproverAccessRequired)
}

func TestListHistory_StaffSeeOwnApproversSeeSubordinates(t *testing.T) {
	ctx := context.Background()
	_, records, _, _, svc := newFixture()
	submitOne(t, svc, records, clarification.CategoryFlexible)

	own, err := svc.ListHistory(ctx, "2001", user.RoleDosen)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	// The head browses subordinates' requests.
	heads, err := svc.ListHistory(ctx, "1001", user.RoleKajur)
	require.NoError(t, err)
	assert.Len(t, heads, 1)

	// The secretary resolves through the head to the same set.
	secs, err := svc.ListHistory(ctx, "2002", user.RoleSekjur)
	require.NoError(t, err)
	assert.Len(t, secs, 1)
}
