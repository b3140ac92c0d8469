package repository

//go:generate mockgen -destination=../mocks/user_repository.go -package=mocks github.com/relivo/orgportal/internal/repository UserRepositoryIface
//go:generate mockgen -destination=../mocks/organization_repository.go -package=mocks github.com/relivo/orgportal/internal/repository OrganizationRepositoryIface
//go:generate mockgen -destination=../mocks/grant_repository.go -package=mocks github.com/relivo/orgportal/internal/repository GrantRepositoryIface
