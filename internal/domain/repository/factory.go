package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Orders() OrderRepository
	Payments() PaymentRepository
	Batches() BatchRepository
	Products() ProductRepository
	Patients() PatientRepository
	Staff() StaffRepository
	Audit() AuditRepository
}
