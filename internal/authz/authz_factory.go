package authz

const (
	ChainViewTeamPendingVacations = "view-team-pending-vacations"
	ChainManagerOperation         = "manager-operation"
	ChainCreateVacation           = "create-vacation"
	ChainVacationOwnership        = "vacation-ownership"
	ChainApproveVacation          = "approve-vacation"
	ChainViewTeamVacations        = "view-team-vacations"
)

// Factory assembles the named chains. Every call builds a new Chain.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) ViewTeamPendingVacations() Chain {
	return NewChain(ChainViewTeamPendingVacations,
		UserExistsHandler{},
		TeamMembershipHandler{},
		ManagerRoleHandler{},
	)
}

func (f *Factory) ManagerOperation() Chain {
	return NewChain(ChainManagerOperation,
		UserExistsHandler{},
		ManagerRoleHandler{},
	)
}

func (f *Factory) CreateVacation() Chain {
	return NewChain(ChainCreateVacation,
		UserExistsHandler{},
		TeamMembershipHandler{},
	)
}

func (f *Factory) VacationOwnership() Chain {
	return NewChain(ChainVacationOwnership,
		UserExistsHandler{},
		VacationOwnershipHandler{},
	)
}

func (f *Factory) ApproveVacation() Chain {
	return NewChain(ChainApproveVacation,
		UserExistsHandler{},
		ManagerRoleHandler{},
		SameTeamHandler{},
	)
}

func (f *Factory) ViewTeamVacations() Chain {
	return NewChain(ChainViewTeamVacations,
		UserExistsHandler{},
		TeamMembershipHandler{},
	)
}
