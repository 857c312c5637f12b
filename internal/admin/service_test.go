package admin

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/patentcert/internal/auth"
	"github.com/dmitrijs2005/patentcert/internal/common"
	"github.com/dmitrijs2005/patentcert/internal/logging"
	"github.com/dmitrijs2005/patentcert/internal/models"
	"github.com/dmitrijs2005/patentcert/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	data *models.AppData
}

func (m *memStore) Load(ctx context.Context) (*models.AppData, error) {
	if m.data == nil {
		return models.Seed(), nil
	}
	return m.data.Clone(), nil
}

func (m *memStore) Save(ctx context.Context, data *models.AppData) error {
	m.data = data.Clone()
	return nil
}

func (m *memStore) Reset(ctx context.Context) error {
	m.data = nil
	return nil
}

func newService(t *testing.T) (*Service, *repository.Aggregate) {
	t.Helper()
	agg, err := repository.Open(context.Background(), &memStore{})
	require.NoError(t, err)
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)))
	return NewService(agg, logger), agg
}

func adminActor() *models.User {
	return &models.User{ID: "admin", Role: models.RoleAdmin}
}

func userActor() *models.User {
	return &models.User{ID: "user1", Role: models.RoleUser}
}

func TestNonAdminRejectedEverywhere(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	actor := userActor()

	assert.ErrorIs(t, svc.UpdateConfig(ctx, actor, models.PatentConfig{PatentName: "a", PatentNo: "b"}), common.ErrorUnauthorized)
	_, err := svc.AddProject(ctx, actor, "x", 1)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.ErrorIs(t, svc.UpdateProject(ctx, actor, "p1", "x", 1), common.ErrorUnauthorized)
	assert.ErrorIs(t, svc.DeleteProject(ctx, actor, "p1"), common.ErrorUnauthorized)
	_, err = svc.AddUser(ctx, actor, "x", "y", "z")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.ErrorIs(t, svc.DeleteUser(ctx, actor, "user1"), common.ErrorUnauthorized)
	assert.ErrorIs(t, svc.Reset(ctx, actor), common.ErrorUnauthorized)
	_, err = svc.Users(ctx, actor)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestUpdateConfig(t *testing.T) {
	ctx := context.Background()
	svc, agg := newService(t)

	cfg := models.PatentConfig{PatentName: "新专利", PatentNo: "CN-2025-1", BackgroundURL: "data:image/png;base64,x"}
	require.NoError(t, svc.UpdateConfig(ctx, adminActor(), cfg))

	agg.View(func(data *models.AppData) {
		assert.Equal(t, cfg, data.Config)
	})

	err := svc.UpdateConfig(ctx, adminActor(), models.PatentConfig{PatentName: " ", PatentNo: "n"})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, agg := newService(t)
	actor := adminActor()

	p, err := svc.AddProject(ctx, actor, "临时展示", 120)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)

	require.NoError(t, svc.UpdateProject(ctx, actor, p.ID, "临时展示 - B类", 150))
	agg.View(func(data *models.AppData) {
		got := data.ProjectByID(p.ID)
		require.NotNil(t, got)
		assert.Equal(t, 150, got.Cost)
	})

	require.NoError(t, svc.DeleteProject(ctx, actor, p.ID))
	agg.View(func(data *models.AppData) {
		assert.Nil(t, data.ProjectByID(p.ID))
	})

	assert.ErrorIs(t, svc.DeleteProject(ctx, actor, p.ID), common.ErrorNotFound)
	assert.ErrorIs(t, svc.UpdateProject(ctx, actor, "missing", "x", 1), common.ErrorNotFound)

	_, err = svc.AddProject(ctx, actor, "", 10)
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = svc.AddProject(ctx, actor, "x", -1)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, agg := newService(t)
	actor := adminActor()

	u, err := svc.AddUser(ctx, actor, "acme", "Acme GmbH", "initial")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Zero(t, u.Credits)
	// stored hashed, never plaintext
	assert.NotEqual(t, "initial", u.Password)
	assert.True(t, auth.VerifyPassword(u.Password, "initial"))

	_, err = svc.AddUser(ctx, actor, "acme", "Other", "pw")
	assert.ErrorIs(t, err, common.ErrorValidation)

	require.NoError(t, svc.UpdateUser(ctx, actor, u.ID, "acme_inc", "Acme Inc", 300))
	agg.View(func(data *models.AppData) {
		got := data.UserByID(u.ID)
		require.NotNil(t, got)
		assert.Equal(t, "acme_inc", got.UserName)
		assert.Equal(t, 300, got.Credits)
	})

	assert.ErrorIs(t, svc.UpdateUser(ctx, actor, u.ID, "tech_corp", "x", 1), common.ErrorValidation)
	assert.ErrorIs(t, svc.UpdateUser(ctx, actor, u.ID, "acme_inc", "x", -5), common.ErrorValidation)

	require.NoError(t, svc.SetPassword(ctx, actor, u.ID, "rotated"))
	agg.View(func(data *models.AppData) {
		assert.True(t, auth.VerifyPassword(data.UserByID(u.ID).Password, "rotated"))
	})

	require.NoError(t, svc.DeleteUser(ctx, actor, u.ID))
	agg.View(func(data *models.AppData) {
		assert.Nil(t, data.UserByID(u.ID))
	})
}

func TestDeleteUserNeverRemovesAdmin(t *testing.T) {
	ctx := context.Background()
	svc, agg := newService(t)

	err := svc.DeleteUser(ctx, adminActor(), "admin")
	assert.ErrorIs(t, err, common.ErrorValidation)
	agg.View(func(data *models.AppData) {
		assert.NotNil(t, data.UserByID("admin"))
	})
}

func TestDeleteProjectKeepsCertificateSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, agg := newService(t)

	require.NoError(t, agg.Update(ctx, func(data *models.AppData) error {
		data.Certificates = append(data.Certificates, models.Certificate{
			ID: "c1", UserID: "user1", ProjectID: "p2", ProjectName: "研发与实验使用",
		})
		return nil
	}))

	require.NoError(t, svc.DeleteProject(ctx, adminActor(), "p2"))
	agg.View(func(data *models.AppData) {
		c, _ := data.CertificateByID("c1")
		require.NotNil(t, c)
		assert.Equal(t, "研发与实验使用", c.ProjectName)
	})
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	svc, agg := newService(t)

	_, err := svc.AddProject(ctx, adminActor(), "extra", 10)
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, adminActor()))
	agg.View(func(data *models.AppData) {
		assert.Len(t, data.Projects, 3)
	})
}

func TestChangeOwnPassword(t *testing.T) {
	ctx := context.Background()
	_, agg := newService(t)

	actor := &models.User{ID: "user1", Role: models.RoleUser}
	require.NoError(t, ChangeOwnPassword(ctx, agg, actor, "mine"))
	agg.View(func(data *models.AppData) {
		assert.True(t, auth.VerifyPassword(data.UserByID("user1").Password, "mine"))
	})

	assert.ErrorIs(t, ChangeOwnPassword(ctx, agg, actor, " "), common.ErrorValidation)
	assert.ErrorIs(t, ChangeOwnPassword(ctx, agg, nil, "x"), common.ErrorUnauthorized)
}
