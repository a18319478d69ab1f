package providers

import (
	"github.com/samber/do/v2"

	"github.com/studytrack/studytrack-server/internal/config"
	"github.com/studytrack/studytrack-server/internal/logger"
	"github.com/studytrack/studytrack-server/internal/service"
	"github.com/studytrack/studytrack-server/internal/validation"
)

// ProvidePartitionLocks provides the per-identity write locks shared by all services.
func ProvidePartitionLocks(i do.Injector) (*service.PartitionLocks, error) {
	return service.NewPartitionLocks(), nil
}

// ProvideValidator provides the input validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideRoleService provides the role registry and its permission gate.
func ProvideRoleService(i do.Injector) (*service.RoleService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	locks := do.MustInvoke[*service.PartitionLocks](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRoleService(storeHandle.Store, locks, sseHandle.Manager, log.Logger), nil
}

// ProvideGoalService provides the goal service.
func ProvideGoalService(i do.Injector) (*service.GoalService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	roles := do.MustInvoke[*service.RoleService](i)
	locks := do.MustInvoke[*service.PartitionLocks](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewGoalService(storeHandle.Store, roles.Gate(), locks, indexHandle.SearchIndex, sseHandle.Manager, v, log.Logger), nil
}

// ProvideStudySessionService provides the study session service.
func ProvideStudySessionService(i do.Injector) (*service.StudySessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	roles := do.MustInvoke[*service.RoleService](i)
	locks := do.MustInvoke[*service.PartitionLocks](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStudySessionService(storeHandle.Store, roles.Gate(), locks, sseHandle.Manager, v, log.Logger), nil
}

// ProvideResourceService provides the resource service.
func ProvideResourceService(i do.Injector) (*service.ResourceService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	roles := do.MustInvoke[*service.RoleService](i)
	locks := do.MustInvoke[*service.PartitionLocks](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewResourceService(storeHandle.Store, roles.Gate(), locks, indexHandle.SearchIndex, sseHandle.Manager, v, log.Logger), nil
}

// ProvideProfileService provides the profile service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	roles := do.MustInvoke[*service.RoleService](i)
	locks := do.MustInvoke[*service.PartitionLocks](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProfileService(storeHandle.Store, roles.Gate(), locks, sseHandle.Manager, v, log.Logger), nil
}

// ProvideSettingsService provides the accessibility settings service.
func ProvideSettingsService(i do.Injector) (*service.SettingsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	roles := do.MustInvoke[*service.RoleService](i)
	locks := do.MustInvoke[*service.PartitionLocks](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSettingsService(storeHandle.Store, roles.Gate(), locks, sseHandle.Manager, v, log.Logger), nil
}

// ProvideStatsService provides the progress stats service.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	roles := do.MustInvoke[*service.RoleService](i)

	return service.NewStatsService(storeHandle.Store, roles.Gate(), cfg.Stats.Location), nil
}
