package api

// Member is one person in a group.
type Member struct {
	Name  string `json:"name" validate:"max=100"`
	Email string `json:"email" validate:"required,email"`
}

// Group is a family sharing expenses.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []*Member `json:"members"`
	CreatedAt int64     `json:"created_at"`
}

type CreateGroupRequest struct {
	Name    string    `json:"name" validate:"required,max=100"`
	Members []*Member `json:"members" validate:"dive,required"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type DeleteGroupResponse struct{}

type AddMemberRequest struct {
	GroupID string  `json:"group_id" validate:"required"`
	Member  *Member `json:"member" validate:"required"`
}

type AddMemberResponse struct {
	Group *Group `json:"group"`
}

type RemoveMemberRequest struct {
	GroupID string `json:"group_id" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
}

type RemoveMemberResponse struct {
	Group *Group `json:"group"`
}
