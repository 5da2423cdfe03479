package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/ad-intel-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-intel-api/internal/config"
	"github.com/vfg2006/ad-intel-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{Secret: "segredo-de-teste"},
	}
}

func activeUser(t *testing.T, password string) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &domain.User{
		ID:           1,
		Name:         "Ana",
		Lastname:     "Silva",
		Email:        "ana@exemplo.com",
		PasswordHash: string(hash),
		Active:       true,
		RoleID:       2,
	}
}

func TestLoginUser_GeneratesValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockUserRepository(ctrl)

	repo.EXPECT().GetUserByEmail("ana@exemplo.com").Return(activeUser(t, "Senha@123"), nil)

	service := NewService(repo, testAuthConfig())

	token, err := service.LoginUser(" Ana@Exemplo.com ", "Senha@123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, 2, claims.UserRoleID)
}

func TestLoginUser_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockUserRepository(ctrl)

	repo.EXPECT().GetUserByEmail("ana@exemplo.com").Return(activeUser(t, "Senha@123"), nil)

	service := NewService(repo, testAuthConfig())

	token, err := service.LoginUser("ana@exemplo.com", "errada")

	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUser_DisabledAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockUserRepository(ctrl)

	user := activeUser(t, "Senha@123")
	user.Active = false
	repo.EXPECT().GetUserByEmail("ana@exemplo.com").Return(user, nil)

	service := NewService(repo, testAuthConfig())

	_, err := service.LoginUser("ana@exemplo.com", "Senha@123")

	assert.ErrorIs(t, err, ErrUserDisabled)
	assert.True(t, IsCredentialsError(err))
}

func TestValidateToken_RejectsTamperedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewService(repomocks.NewMockUserRepository(ctrl), testAuthConfig())

	claims, err := service.ValidateToken("token.invalido.aqui")

	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestCreateUser_HashesPasswordAndDefaultsRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockUserRepository(ctrl)

	repo.EXPECT().GetUserByEmail("novo@exemplo.com").Return(nil, nil)
	repo.EXPECT().
		CreateUser(gomock.Any()).
		DoAndReturn(func(user *domain.User) (*domain.User, error) {
			assert.NotEqual(t, "Senha@123", user.PasswordHash)
			assert.Equal(t, 2, user.RoleID)
			assert.False(t, user.Active)
			return user, nil
		})

	service := NewService(repo, testAuthConfig())

	user, err := service.CreateUser(&domain.User{
		Name:         "Novo",
		Lastname:     "Usuário",
		Email:        "Novo@Exemplo.com",
		PasswordHash: "Senha@123",
	})

	require.NoError(t, err)
	assert.Equal(t, "novo@exemplo.com", user.Email)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockUserRepository(ctrl)

	repo.EXPECT().GetUserByEmail("ana@exemplo.com").Return(activeUser(t, "x"), nil)

	service := NewService(repo, testAuthConfig())

	user, err := service.CreateUser(&domain.User{
		Name:         "Ana",
		Lastname:     "Silva",
		Email:        "ana@exemplo.com",
		PasswordHash: "Senha@123",
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestValidatePasswordStrength(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewService(repomocks.NewMockUserRepository(ctrl), testAuthConfig())

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "senha forte", password: "Senha@123", wantErr: false},
		{name: "curta demais", password: "S@1a", wantErr: true},
		{name: "sem maiúscula", password: "senha@123", wantErr: true},
		{name: "sem número", password: "Senha@abc", wantErr: true},
		{name: "sem caractere especial", password: "Senha1234", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockUserRepository(ctrl)

	repo.EXPECT().GetUserByID(1).Return(activeUser(t, "Senha@123"), nil)
	repo.EXPECT().UpdatePassword(1, gomock.Any()).Return(nil)

	service := NewService(repo, testAuthConfig())

	assert.NoError(t, service.ChangePassword(1, "Senha@123", "NovaSenha@456"))
}

func TestChangePassword_SamePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockUserRepository(ctrl)

	repo.EXPECT().GetUserByID(1).Return(activeUser(t, "Senha@123"), nil)

	service := NewService(repo, testAuthConfig())

	assert.ErrorIs(t, service.ChangePassword(1, "Senha@123", "Senha@123"), ErrSamePassword)
}

func TestGenerateStrongPassword_RequiresAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockUserRepository(ctrl)

	analyst := activeUser(t, "Senha@123")
	repo.EXPECT().GetUserByID(1).Return(analyst, nil)

	service := NewService(repo, testAuthConfig())

	password, err := service.GenerateStrongPassword(1, 2)

	assert.Empty(t, password)
	assert.ErrorIs(t, err, ErrNoAdminPrivileges)
}

func TestGenerateStrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockUserRepository(ctrl)

	admin := activeUser(t, "Senha@123")
	admin.RoleID = 1
	target := activeUser(t, "Outra@123")
	target.ID = 2

	repo.EXPECT().GetUserByID(1).Return(admin, nil)
	repo.EXPECT().GetUserByID(2).Return(target, nil)
	repo.EXPECT().UpdatePassword(2, gomock.Any()).Return(nil)

	service := NewService(repo, testAuthConfig())

	password, err := service.GenerateStrongPassword(1, 2)

	require.NoError(t, err)
	assert.Len(t, password, 12)
	assert.NoError(t, service.ValidatePasswordStrength(password))
}
