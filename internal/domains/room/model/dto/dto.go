package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"time"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	HotelID    string `json:"hotel_id"     validate:"required,uuid"`
	RoomTypeID string `json:"room_type_id" validate:"required,uuid"`
	Number     string `json:"number"       validate:"required,max=32"`
	Floor      int    `json:"floor"        validate:"omitempty,min=0"`
}

func (c *CreateRoomRequest) ToModel(user string, now time.Time) model.HotelRoom {
	return model.HotelRoom{
		ID:         uuid.NewString(),
		HotelID:    c.HotelID,
		RoomTypeID: c.RoomTypeID,
		Number:     c.Number,
		Floor:      c.Floor,
		Status:     model.StatusAvailable,
		Metadata:   gModel.NewMetadata(user, now),
	}
}

type UpdateRoomRequest struct {
	RoomTypeID string `db:"room_type_id" json:"room_type_id" validate:"omitempty,uuid"`
	Number     string `db:"number"       json:"number"       validate:"omitempty,max=32"`
	Floor      *int   `db:"floor"        json:"floor"        validate:"omitempty,min=0"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied dirty"`
}

type OutOfServiceRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
	Until  string `json:"until"  validate:"omitempty,datetime=2006-01-02"`
}

type RoomResponse struct {
	ID                 string  `json:"id"`
	HotelID            string  `json:"hotel_id"`
	RoomTypeID         string  `json:"room_type_id"`
	RoomTypeName       string  `json:"room_type_name"`
	Number             string  `json:"number"`
	Floor              int     `json:"floor"`
	Status             string  `json:"status"`
	OutOfServiceReason *string `json:"out_of_service_reason,omitempty"`
	OutOfServiceUntil  *string `json:"out_of_service_until,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.HotelRoom) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.RoomTypeID = model.RoomTypeID
	r.RoomTypeName = model.RoomTypeName
	r.Number = model.Number
	r.Floor = model.Floor
	r.Status = model.Status
	r.OutOfServiceReason = model.OutOfServiceReason
	r.OutOfServiceUntil = nil

	if model.OutOfServiceUntil != nil {
		until := model.OutOfServiceUntil.Format(constant.DateOnly)
		r.OutOfServiceUntil = &until
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.HotelRoom, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type StatusLogResponse struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	ChangedBy string `json:"changed_by"`
}

func (s *StatusLogResponse) FromModel(model model.RoomStatusLog) {
	s.ID = model.ID
	s.RoomID = model.RoomID
	s.Status = model.Status
	s.Timestamp = model.Timestamp.Format(constant.DateFormat)
	s.ChangedBy = model.CreatedBy
}

type GetStatusLogsResponse struct {
	Logs      []StatusLogResponse `json:"logs"`
	TotalPage int                 `json:"total_page"`
	TotalData int                 `json:"total_data"`
}

func (r *GetStatusLogsResponse) FromModels(models []model.RoomStatusLog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Logs = make([]StatusLogResponse, len(models))
	for i, mod := range models {
		r.Logs[i].FromModel(mod)
	}
}

type ListRoomsQuery struct {
	HotelID    string
	RoomTypeID string
	Status     string
	Floor      string
	Number     string
}

func (q ListRoomsQuery) ToFilter() gDto.FilterGroup {
	filters := []any{}

	for _, pair := range [][2]string{
		{model.FieldHotelID, q.HotelID},
		{model.FieldRoomTypeID, q.RoomTypeID},
		{model.FieldStatus, q.Status},
		{model.FieldFloor, q.Floor},
	} {
		field, value := pair[0], pair[1]
		if value != "" {
			filters = append(filters, gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: model.TableName})
		}
	}

	if q.Number != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldNumber, Value: q.Number, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	return shared.FilterAnd(filters...)
}
