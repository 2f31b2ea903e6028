package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"autohaus-crm/internal/domain/kaufvertrag"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const kaufvertragColumns = `id, kunde_name, kunde_vorname, kunde_plz, kunde_ort,
        kunde_telefon, kunde_email, fahrzeug_marke, fahrzeug_modell,
        fahrzeug_chassis_nr, fahrzeug_stamm_nr, fahrzeug_farbe,
        fahrzeug_inverkehrsetzung, fahrzeug_typ, verkaufspreis,
        eintausch_marke, eintausch_modell, eintausch_chassis_nr,
        eintausch_stamm_nr, eintausch_farbe, eintausch_inverkehrsetzung,
        eintausch_km_stand, eintausch_preis, eintausch_bemerkungen,
        eintausch_upload_ausweis, eintausch_upload_aussen, eintausch_upload_innen,
        eintausch_uploads, created_by, created_at, updated_at`

type KaufvertragRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ kaufvertrag.KaufvertragRepository = (*KaufvertragRepository)(nil)

func NewKaufvertragRepository(db DBPool, logger *slog.Logger) *KaufvertragRepository {
	if db == nil {
		panic("DBPool cannot be nil for KaufvertragRepository")
	}
	return &KaufvertragRepository{db: db, logger: logger.With("component", "KaufvertragRepository")}
}

func (r *KaufvertragRepository) Save(ctx context.Context, kv *kaufvertrag.Kaufvertrag) error {
	if kv == nil {
		return fmt.Errorf("%w: kaufvertrag cannot be nil", apperrors.ErrInvalidArgument)
	}
	if kv.ID != 0 {
		return fmt.Errorf("%w: kaufvertrag records are insert-only", apperrors.ErrInvalidArgument)
	}

	query := `
        INSERT INTO kaufvertraege (kunde_name, kunde_vorname, kunde_plz, kunde_ort,
            kunde_telefon, kunde_email, fahrzeug_marke, fahrzeug_modell,
            fahrzeug_chassis_nr, fahrzeug_stamm_nr, fahrzeug_farbe,
            fahrzeug_inverkehrsetzung, fahrzeug_typ, verkaufspreis,
            eintausch_marke, eintausch_modell, eintausch_chassis_nr,
            eintausch_stamm_nr, eintausch_farbe, eintausch_inverkehrsetzung,
            eintausch_km_stand, eintausch_preis, eintausch_bemerkungen,
            eintausch_upload_ausweis, eintausch_upload_aussen, eintausch_upload_innen,
            eintausch_uploads, created_by, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
            $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
            NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		kv.KundeName, kv.KundeVorname, kv.KundePLZ, kv.KundeOrt,
		kv.KundeTelefon, kv.KundeEmail, kv.FahrzeugMarke, kv.FahrzeugModell,
		kv.FahrzeugChassisNr, kv.FahrzeugStammNr, kv.FahrzeugFarbe,
		kv.FahrzeugInverkehrsetzung, kv.FahrzeugTyp, kv.Verkaufspreis,
		kv.EintauschMarke, kv.EintauschModell, kv.EintauschChassisNr,
		kv.EintauschStammNr, kv.EintauschFarbe, kv.EintauschInverkehrsetzung,
		kv.EintauschKmStand, kv.EintauschPreis, kv.EintauschBemerkungen,
		kv.EintauschUploadAusweis, kv.EintauschUploadAussen, kv.EintauschUploadInnen,
		kv.EintauschUploads, kv.CreatedBy,
	).Scan(&kv.ID, &kv.CreatedAt, &kv.UpdatedAt)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert kaufvertrag", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Kaufvertrag inserted successfully", slog.Int64("kaufvertragID", kv.ID))
	return nil
}

func (r *KaufvertragRepository) FindByID(ctx context.Context, kaufvertragID int64) (*kaufvertrag.Kaufvertrag, error) {
	query := `SELECT ` + kaufvertragColumns + ` FROM kaufvertraege WHERE id = $1`

	var kv kaufvertrag.Kaufvertrag
	err := r.db.QueryRow(ctx, query, kaufvertragID).Scan(scanDestinations(&kv)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, kaufvertrag.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan kaufvertrag by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get kaufvertrag by ID: %w", apperrors.ErrDatabase, err)
	}
	return &kv, nil
}

func (r *KaufvertragRepository) FindAll(ctx context.Context) ([]*kaufvertrag.Kaufvertrag, error) {
	query := `SELECT ` + kaufvertragColumns + ` FROM kaufvertraege ORDER BY id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query kaufvertraege", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query kaufvertraege: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	list := make([]*kaufvertrag.Kaufvertrag, 0)
	for rows.Next() {
		var kv kaufvertrag.Kaufvertrag
		if err := rows.Scan(scanDestinations(&kv)...); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan kaufvertrag row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan kaufvertrag row: %w", apperrors.ErrDatabase, err)
		}
		list = append(list, &kv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating kaufvertrag rows: %w", apperrors.ErrDatabase, err)
	}
	return list, nil
}

func (r *KaufvertragRepository) Delete(ctx context.Context, kaufvertragID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM kaufvertraege WHERE id = $1`, kaufvertragID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete kaufvertrag", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete kaufvertrag: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return kaufvertrag.ErrNotFound
	}
	return nil
}

// scanDestinations keeps the column list and the scan targets in one
// place; the order must match kaufvertragColumns.
func scanDestinations(kv *kaufvertrag.Kaufvertrag) []any {
	return []any{
		&kv.ID, &kv.KundeName, &kv.KundeVorname, &kv.KundePLZ, &kv.KundeOrt,
		&kv.KundeTelefon, &kv.KundeEmail, &kv.FahrzeugMarke, &kv.FahrzeugModell,
		&kv.FahrzeugChassisNr, &kv.FahrzeugStammNr, &kv.FahrzeugFarbe,
		&kv.FahrzeugInverkehrsetzung, &kv.FahrzeugTyp, &kv.Verkaufspreis,
		&kv.EintauschMarke, &kv.EintauschModell, &kv.EintauschChassisNr,
		&kv.EintauschStammNr, &kv.EintauschFarbe, &kv.EintauschInverkehrsetzung,
		&kv.EintauschKmStand, &kv.EintauschPreis, &kv.EintauschBemerkungen,
		&kv.EintauschUploadAusweis, &kv.EintauschUploadAussen, &kv.EintauschUploadInnen,
		&kv.EintauschUploads, &kv.CreatedBy, &kv.CreatedAt, &kv.UpdatedAt,
	}
}
