package collections

type CreateCollectionRequestDTO struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
	IsPublic    bool   `json:"isPublic"`
}

type UpdateCollectionRequestDTO struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	IsPublic    *bool   `json:"isPublic"`
}

type GetCollectionsResponseDTO struct {
	Collections []*Collection `json:"collections"`
}
