package dto

import (
	"hotel/internal/domains/user/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string  `json:"email"               validate:"required,email"`
	Password string  `json:"password"            validate:"required,min=8"`
	Level    string  `json:"level"               validate:"required,oneof=superadmin admin manager receptionist housekeeper waiter"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	HotelID  *string `json:"hotel_id,omitempty"  validate:"omitempty,uuid"`
}

func (r *CreateUserRequest) ToModel(user, hashedPassword string, now time.Time) model.User {
	return model.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: hashedPassword,
		Level:    r.Level,
		FullName: r.FullName,
		HotelID:  r.HotelID,
		Active:   true,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type UpdateUserRequest struct {
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,max=255"`
	HotelID  *string `db:"hotel_id"  json:"hotel_id,omitempty"  validate:"omitempty,uuid"`
	Active   *bool   `db:"active"    json:"active,omitempty"`
}

type LockUserRequest struct {
	Minutes int `json:"minutes" validate:"required,min=1,max=525600"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type ChangeRoleRequest struct {
	Level string `json:"level" validate:"required,oneof=superadmin admin manager receptionist housekeeper waiter"`
}

type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Level       string  `json:"level"`
	FullName    *string `json:"full_name,omitempty"`
	HotelID     *string `json:"hotel_id,omitempty"`
	Active      bool    `json:"active"`
	LockedUntil *string `json:"locked_until,omitempty"`
	LastLogin   *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Level = model.Level
	r.FullName = model.FullName
	r.HotelID = model.HotelID
	r.Active = model.Active
	r.LockedUntil = formatTime(model.LockedUntil)
	r.LastLogin = formatTime(model.LastLogin)
	r.Metadata.FromModel(model.Metadata)
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := t.Format(constant.DateFormat)

	return &formatted
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

type ListUsersQuery struct {
	HotelID string
	Level   string
	Email   string
	Active  string
}

func (q ListUsersQuery) ToFilter() gDto.FilterGroup {
	filters := []any{}

	for _, pair := range [][2]string{
		{model.FieldHotelID, q.HotelID},
		{model.FieldLevel, q.Level},
	} {
		field, value := pair[0], pair[1]
		if value != "" {
			filters = append(filters, gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: model.TableName})
		}
	}

	if q.Email != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldEmail, Value: q.Email, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	if q.Active != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldActive, Value: q.Active == "true", Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return shared.FilterAnd(filters...)
}
