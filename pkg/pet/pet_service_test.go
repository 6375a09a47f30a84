package pet

import (
	"PetDiary/domain"
	"PetDiary/entities"
	"context"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockPetRepo struct {
	pets     map[uuid.UUID]*entities.Pet
	records  map[uuid.UUID]int64
	archived map[uuid.UUID]string
	deleted  []uuid.UUID
}

func newMockPetRepo() *mockPetRepo {
	return &mockPetRepo{
		pets:     map[uuid.UUID]*entities.Pet{},
		records:  map[uuid.UUID]int64{},
		archived: map[uuid.UUID]string{},
	}
}

func (m *mockPetRepo) CreatePet(_ context.Context, pet *entities.Pet) error {
	m.pets[pet.ID] = pet
	return nil
}

func (m *mockPetRepo) GetPetByID(_ context.Context, id string) (*entities.Pet, error) {
	for _, p := range m.pets {
		if p.ID.String() == id && !p.IsDeleted {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPetRepo) GetPets(_ context.Context) ([]*entities.Pet, error) {
	var out []*entities.Pet
	for _, p := range m.pets {
		if !p.IsDeleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPetRepo) UpdatePet(_ context.Context, pet *entities.Pet) error {
	m.pets[pet.ID] = pet
	return nil
}

func (m *mockPetRepo) ArchivePet(_ context.Context, id uuid.UUID, reason string) error {
	m.pets[id].IsDeleted = true
	m.pets[id].DeletionReason = reason
	m.archived[id] = reason
	return nil
}

func (m *mockPetRepo) DeletePet(_ context.Context, id uuid.UUID) error {
	delete(m.pets, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockPetRepo) CountRecords(_ context.Context, id uuid.UUID) (int64, error) {
	return m.records[id], nil
}

type mockS3 struct {
	uploaded []string
	updated  []string
	removed  []string
}

func (m *mockS3) UploadFile(fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	key := folder + "/" + fileName + ".png"
	m.uploaded = append(m.uploaded, key)
	return key, nil
}

func (m *mockS3) UpdateFile(objectKey string, _ *multipart.FileHeader, _ ...string) (string, error) {
	m.updated = append(m.updated, objectKey)
	return objectKey, nil
}

func (m *mockS3) DeleteFile(objectKey string) error {
	m.removed = append(m.removed, objectKey)
	return nil
}

func (m *mockS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.example/" + objectKey
}

func (m *mockS3) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, "https://bucket.example/") {
		return ""
	}
	return strings.TrimPrefix(link, "https://bucket.example/")
}

func newTestService(repo *mockPetRepo, s3 *mockS3) *petService {
	svc := NewPetService(repo, s3, zap.NewNop()).(*petService)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func seedPet(repo *mockPetRepo) *entities.Pet {
	p := &entities.Pet{ID: uuid.New(), Name: "Mochi"}
	repo.pets[p.ID] = p
	return p
}

func TestCalculateAge(t *testing.T) {
	today := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	date := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	tests := []struct {
		name      string
		birthDate *time.Time
		expected  string
	}{
		{name: "unknown", birthDate: nil, expected: "未知"},
		{name: "newborn", birthDate: date(2024, 4, 20), expected: "0個月"},
		{name: "months only", birthDate: date(2024, 1, 1), expected: "4個月"},
		{name: "years and months", birthDate: date(2021, 2, 1), expected: "3歲 3個月"},
		{name: "future date", birthDate: date(2025, 1, 1), expected: "0個月"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateAge(tt.birthDate, today))
		})
	}
}

func TestCreatePet(t *testing.T) {
	repo := newMockPetRepo()
	svc := newTestService(repo, &mockS3{})

	res, err := svc.CreatePet(context.Background(), domain.CreatePetRequest{
		Name:       " Mochi ",
		BirthDate:  "2023-01-01",
		Gender:     "母",
		Weight:     4.2,
		HealthTags: []string{"腎貓"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Mochi", res.Name)
	assert.Equal(t, "1歲 4個月", res.Age)
	assert.Equal(t, []string{"腎貓"}, res.HealthTags)
	assert.Len(t, repo.pets, 1)
}

func TestCreatePet_Rejects(t *testing.T) {
	svc := newTestService(newMockPetRepo(), &mockS3{})

	_, err := svc.CreatePet(context.Background(), domain.CreatePetRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrPetNameRequired)

	_, err = svc.CreatePet(context.Background(), domain.CreatePetRequest{Name: "Mochi", HealthTags: []string{"fine"}})
	assert.ErrorIs(t, err, domain.ErrInvalidHealthTag)

	_, err = svc.CreatePet(context.Background(), domain.CreatePetRequest{Name: "Mochi", BirthDate: "01/01/2023"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestUpdatePet_PartialFields(t *testing.T) {
	repo := newMockPetRepo()
	p := seedPet(repo)
	p.Breed = "Shorthair"
	svc := newTestService(repo, &mockS3{})
	weight := 5.0
	desc := "低磷飲食"

	res, err := svc.UpdatePet(context.Background(), p.ID.String(), domain.UpdatePetRequest{
		Weight:     &weight,
		HealthDesc: &desc,
	})

	require.NoError(t, err)
	assert.Equal(t, "Mochi", res.Name)
	assert.Equal(t, "Shorthair", res.Breed)
	assert.InDelta(t, 5.0, res.Weight, 1e-9)
	assert.Equal(t, "低磷飲食", res.HealthDesc)
}

func TestGetPet_NotFound(t *testing.T) {
	svc := newTestService(newMockPetRepo(), &mockS3{})

	_, err := svc.GetPet(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrPetNotFound)

	_, err = svc.GetPet(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestDeletePet_ArchivesWhenRecordsExist(t *testing.T) {
	repo := newMockPetRepo()
	p := seedPet(repo)
	repo.records[p.ID] = 3
	svc := newTestService(repo, &mockS3{})

	_, err := svc.DeletePet(context.Background(), p.ID.String(), domain.DeletePetRequest{Reason: " "})
	assert.ErrorIs(t, err, domain.ErrDeletionReasonMissing)
	assert.False(t, p.IsDeleted)

	res, err := svc.DeletePet(context.Background(), p.ID.String(), domain.DeletePetRequest{Reason: "test data"})
	require.NoError(t, err)
	assert.True(t, res.Archived)
	assert.Equal(t, "test data", repo.archived[p.ID])
	assert.Empty(t, repo.deleted)

	pets, err := svc.GetPets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pets)
}

func TestDeletePet_HardDeletesWithoutRecords(t *testing.T) {
	repo := newMockPetRepo()
	p := seedPet(repo)
	p.ImageURL = "https://bucket.example/pets/pet-1.png"
	s3 := &mockS3{}
	svc := newTestService(repo, s3)

	res, err := svc.DeletePet(context.Background(), p.ID.String(), domain.DeletePetRequest{})

	require.NoError(t, err)
	assert.False(t, res.Archived)
	assert.Equal(t, []uuid.UUID{p.ID}, repo.deleted)
	assert.Equal(t, []string{"pets/pet-1.png"}, s3.removed)
}

func TestUploadPhoto(t *testing.T) {
	repo := newMockPetRepo()
	p := seedPet(repo)
	s3 := &mockS3{}
	svc := newTestService(repo, s3)
	file := &multipart.FileHeader{Filename: "mochi.png"}

	res, err := svc.UploadPhoto(context.Background(), p.ID.String(), domain.UploadPetPhotoRequest{Image: file})
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/pets/pet-"+p.ID.String()+".png", res.ImageURL)
	assert.Len(t, s3.uploaded, 1)

	_, err = svc.UploadPhoto(context.Background(), p.ID.String(), domain.UploadPetPhotoRequest{Image: file})
	require.NoError(t, err)
	assert.Equal(t, []string{"pets/pet-" + p.ID.String() + ".png"}, s3.updated)
}
