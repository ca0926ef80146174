package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/shipment-label-service/internal/domain"
)

type PostgresShipmentRepo struct {
	Pool *pgxpool.Pool
}

func NewPostgresShipmentRepo(pool *pgxpool.Pool) *PostgresShipmentRepo {
	return &PostgresShipmentRepo{Pool: pool}
}

const shipmentColumns = `id, shipper_name, shipper_address1, COALESCE(shipper_address2,''),
  shipper_postal_code, shipper_city,
  receiver_name, COALESCE(receiver_company,''), receiver_country,
  receiver_address1, COALESCE(receiver_address2,''), receiver_postal_code, receiver_city,
  receiver_email, receiver_phone,
  content_type, gogreen_plus, status, COALESCE(airway_bill_number,''), created_at`

func (r *PostgresShipmentRepo) Create(ctx context.Context, s *domain.Shipment) (string, error) {
	id := uuid.NewString()
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `INSERT INTO shipment(
        id, shipper_name, shipper_address1, shipper_address2, shipper_postal_code, shipper_city,
        receiver_name, receiver_company, receiver_country, receiver_address1, receiver_address2,
        receiver_postal_code, receiver_city, receiver_email, receiver_phone,
        content_type, gogreen_plus, status)
        VALUES($1,$2,$3,NULLIF($4,''),$5,$6,$7,NULLIF($8,''),$9,$10,NULLIF($11,''),$12,$13,$14,$15,$16,$17,$18)`,
		id, s.Shipper.Name, s.Shipper.Address1, s.Shipper.Address2, s.Shipper.PostalCode, s.Shipper.City,
		s.Receiver.Name, s.Receiver.Company, s.Receiver.Country, s.Receiver.Address1, s.Receiver.Address2,
		s.Receiver.PostalCode, s.Receiver.City, s.Receiver.Email, s.Receiver.Phone,
		string(s.ContentType), s.GoGreenPlus, string(domain.StatusDraft))
	if err != nil {
		return "", err
	}

	if err := insertLineItems(ctx, tx, id, s.LineItems); err != nil {
		return "", err
	}

	if s.Package != nil {
		_, err = tx.Exec(ctx, `INSERT INTO shipment_package(shipment_id, weight, length, width, height)
            VALUES($1,$2,$3,$4,$5)`,
			id, s.Package.Weight, s.Package.Length, s.Package.Width, s.Package.Height)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (r *PostgresShipmentRepo) GetByID(ctx context.Context, id string) (*domain.Shipment, error) {
	var s domain.Shipment
	err := r.Pool.QueryRow(ctx, `SELECT `+shipmentColumns+` FROM shipment WHERE id = $1`, id).Scan(
		&s.ID, &s.Shipper.Name, &s.Shipper.Address1, &s.Shipper.Address2,
		&s.Shipper.PostalCode, &s.Shipper.City,
		&s.Receiver.Name, &s.Receiver.Company, &s.Receiver.Country,
		&s.Receiver.Address1, &s.Receiver.Address2, &s.Receiver.PostalCode, &s.Receiver.City,
		&s.Receiver.Email, &s.Receiver.Phone,
		&s.ContentType, &s.GoGreenPlus, &s.Status, &s.AirwayBillNumber, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	s.LineItems = items

	pkg, err := r.loadPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Package = pkg

	return &s, nil
}

func (r *PostgresShipmentRepo) Update(ctx context.Context, s *domain.Shipment) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE shipment SET
        shipper_name=$2, shipper_address1=$3, shipper_address2=NULLIF($4,''),
        shipper_postal_code=$5, shipper_city=$6,
        receiver_name=$7, receiver_company=NULLIF($8,''), receiver_country=$9,
        receiver_address1=$10, receiver_address2=NULLIF($11,''), receiver_postal_code=$12,
        receiver_city=$13, receiver_email=$14, receiver_phone=$15,
        content_type=$16, gogreen_plus=$17
        WHERE id=$1`,
		s.ID, s.Shipper.Name, s.Shipper.Address1, s.Shipper.Address2,
		s.Shipper.PostalCode, s.Shipper.City,
		s.Receiver.Name, s.Receiver.Company, s.Receiver.Country,
		s.Receiver.Address1, s.Receiver.Address2, s.Receiver.PostalCode,
		s.Receiver.City, s.Receiver.Email, s.Receiver.Phone,
		string(s.ContentType), s.GoGreenPlus)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	// строки товара пересоздаются целиком
	if _, err := tx.Exec(ctx, `DELETE FROM shipment_line_item WHERE shipment_id=$1`, s.ID); err != nil {
		return err
	}
	if err := insertLineItems(ctx, tx, s.ID, s.LineItems); err != nil {
		return err
	}

	if s.Package != nil {
		_, err = tx.Exec(ctx, `INSERT INTO shipment_package(shipment_id, weight, length, width, height)
            VALUES($1,$2,$3,$4,$5)
            ON CONFLICT (shipment_id) DO UPDATE SET
            weight=EXCLUDED.weight, length=EXCLUDED.length, width=EXCLUDED.width, height=EXCLUDED.height`,
			s.ID, s.Package.Weight, s.Package.Length, s.Package.Width, s.Package.Height)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresShipmentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM shipment WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresShipmentRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.ShipmentSummary, error) {
	q := `SELECT id, COALESCE(airway_bill_number,''), receiver_country, status, created_at
          FROM shipment WHERE 1=1`
	args := []any{}
	if f.Status != "" {
		args = append(args, string(f.Status))
		q += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.DestinationCountry != "" {
		args = append(args, f.DestinationCountry)
		q += fmt.Sprintf(" AND receiver_country = $%d", len(args))
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.ShipmentSummary{}
	for rows.Next() {
		var it domain.ShipmentSummary
		if err := rows.Scan(&it.ID, &it.AirwayBillNumber, &it.DestinationCountry, &it.Status, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresShipmentRepo) Stats(ctx context.Context) (domain.ShipmentStats, error) {
	var stats domain.ShipmentStats
	rows, err := r.Pool.Query(ctx, `SELECT status, COUNT(*) FROM shipment GROUP BY status`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return stats, err
		}
		switch domain.Status(status) {
		case domain.StatusDraft:
			stats.Draft = n
		case domain.StatusLabelCreated:
			stats.LabelCreated = n
		case domain.StatusPickupCompleted:
			stats.PickupCompleted = n
		case domain.StatusDelivered:
			stats.Delivered = n
		}
	}
	return stats, rows.Err()
}

func (r *PostgresShipmentRepo) SetLabel(ctx context.Context, id, awb string) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE shipment SET status=$2, airway_bill_number=$3
        WHERE id=$1 AND status=$4`,
		id, string(domain.StatusLabelCreated), awb, string(domain.StatusDraft))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// запись либо отсутствует, либо уже вышла из draft (гонка двух вызовов)
		return &domain.PreconditionError{Reason: "shipment is not in draft status"}
	}
	return nil
}

func (r *PostgresShipmentRepo) LoadAll(ctx context.Context, fn func(s domain.Shipment) error) error {
	rows, err := r.Pool.Query(ctx, `SELECT `+shipmentColumns+` FROM shipment`)
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := map[string]*domain.Shipment{}
	order := []string{}
	for rows.Next() {
		var s domain.Shipment
		if err := rows.Scan(
			&s.ID, &s.Shipper.Name, &s.Shipper.Address1, &s.Shipper.Address2,
			&s.Shipper.PostalCode, &s.Shipper.City,
			&s.Receiver.Name, &s.Receiver.Company, &s.Receiver.Country,
			&s.Receiver.Address1, &s.Receiver.Address2, &s.Receiver.PostalCode, &s.Receiver.City,
			&s.Receiver.Email, &s.Receiver.Phone,
			&s.ContentType, &s.GoGreenPlus, &s.Status, &s.AirwayBillNumber, &s.CreatedAt); err != nil {
			return err
		}
		s.LineItems = []domain.LineItem{}
		byID[s.ID] = &s
		order = append(order, s.ID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	liRows, err := r.Pool.Query(ctx, `SELECT shipment_id, description, quantity_value, quantity_unit,
        value, COALESCE(value_currency,''), COALESCE(weight_net,0), COALESCE(weight_gross,0),
        COALESCE(hs_code,''), COALESCE(manufacturer_country,''), COALESCE(customer_reference,''),
        export_reason_type
        FROM shipment_line_item ORDER BY shipment_id, sort_order`)
	if err != nil {
		return err
	}
	defer liRows.Close()
	for liRows.Next() {
		var sid string
		var li domain.LineItem
		if err := liRows.Scan(&sid, &li.Description, &li.QuantityValue, &li.QuantityUnit,
			&li.Value, &li.ValueCurrency, &li.WeightNet, &li.WeightGross,
			&li.HSCode, &li.ManufacturerCountry, &li.CustomerReference, &li.ExportReasonType); err != nil {
			return err
		}
		if s, ok := byID[sid]; ok {
			s.LineItems = append(s.LineItems, li)
		}
	}
	if err := liRows.Err(); err != nil {
		return err
	}

	pkgRows, err := r.Pool.Query(ctx, `SELECT shipment_id, weight, length, width, height FROM shipment_package`)
	if err != nil {
		return err
	}
	defer pkgRows.Close()
	for pkgRows.Next() {
		var sid string
		var p domain.Package
		if err := pkgRows.Scan(&sid, &p.Weight, &p.Length, &p.Width, &p.Height); err != nil {
			return err
		}
		if s, ok := byID[sid]; ok {
			s.Package = &p
		}
	}
	if err := pkgRows.Err(); err != nil {
		return err
	}

	for _, id := range order {
		if err := fn(*byID[id]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresShipmentRepo) loadLineItems(ctx context.Context, id string) ([]domain.LineItem, error) {
	rows, err := r.Pool.Query(ctx, `SELECT description, quantity_value, quantity_unit,
        value, COALESCE(value_currency,''), COALESCE(weight_net,0), COALESCE(weight_gross,0),
        COALESCE(hs_code,''), COALESCE(manufacturer_country,''), COALESCE(customer_reference,''),
        export_reason_type
        FROM shipment_line_item WHERE shipment_id=$1 ORDER BY sort_order`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// отсутствующие строки — пустой срез, не nil
	items := []domain.LineItem{}
	for rows.Next() {
		var li domain.LineItem
		if err := rows.Scan(&li.Description, &li.QuantityValue, &li.QuantityUnit,
			&li.Value, &li.ValueCurrency, &li.WeightNet, &li.WeightGross,
			&li.HSCode, &li.ManufacturerCountry, &li.CustomerReference, &li.ExportReasonType); err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return items, rows.Err()
}

func (r *PostgresShipmentRepo) loadPackage(ctx context.Context, id string) (*domain.Package, error) {
	var p domain.Package
	err := r.Pool.QueryRow(ctx, `SELECT weight, length, width, height
        FROM shipment_package WHERE shipment_id=$1`, id).Scan(&p.Weight, &p.Length, &p.Width, &p.Height)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func insertLineItems(ctx context.Context, tx pgx.Tx, shipmentID string, items []domain.LineItem) error {
	for i, li := range items {
		_, err := tx.Exec(ctx, `INSERT INTO shipment_line_item(
            shipment_id, sort_order, description, quantity_value, quantity_unit,
            value, value_currency, weight_net, weight_gross,
            hs_code, manufacturer_country, customer_reference, export_reason_type)
            VALUES($1,$2,$3,$4,$5,$6,NULLIF($7,''),$8,$9,NULLIF($10,''),NULLIF($11,''),NULLIF($12,''),$13)`,
			shipmentID, i, li.Description, li.QuantityValue, li.QuantityUnit,
			li.Value, li.ValueCurrency, li.WeightNet, li.WeightGross,
			li.HSCode, li.ManufacturerCountry, li.CustomerReference, string(li.ExportReasonType))
		if err != nil {
			return err
		}
	}
	return nil
}

var _ domain.ShipmentRepository = (*PostgresShipmentRepo)(nil)

// EnsureSchema — создать необходимые таблицы, если отсутствуют.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS shipment (
  id text PRIMARY KEY,
  shipper_name text NOT NULL,
  shipper_address1 text NOT NULL,
  shipper_address2 text,
  shipper_postal_code text NOT NULL,
  shipper_city text NOT NULL,
  receiver_name text NOT NULL,
  receiver_company text,
  receiver_country text NOT NULL,
  receiver_address1 text NOT NULL,
  receiver_address2 text,
  receiver_postal_code text NOT NULL,
  receiver_city text NOT NULL,
  receiver_email text NOT NULL,
  receiver_phone text NOT NULL,
  content_type text NOT NULL,
  gogreen_plus boolean NOT NULL DEFAULT false,
  status text NOT NULL DEFAULT 'draft',
  airway_bill_number text,
  created_at timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS shipment_line_item (
  shipment_id text NOT NULL REFERENCES shipment(id) ON DELETE CASCADE,
  sort_order int NOT NULL,
  description text NOT NULL,
  quantity_value int NOT NULL,
  quantity_unit text NOT NULL,
  value numeric NOT NULL,
  value_currency text,
  weight_net numeric,
  weight_gross numeric,
  hs_code text,
  manufacturer_country text,
  customer_reference text,
  export_reason_type text NOT NULL,
  PRIMARY KEY (shipment_id, sort_order)
);
CREATE TABLE IF NOT EXISTS shipment_package (
  shipment_id text PRIMARY KEY REFERENCES shipment(id) ON DELETE CASCADE,
  weight numeric NOT NULL,
  length numeric NOT NULL,
  width numeric NOT NULL,
  height numeric NOT NULL
);`)
	return err
}
