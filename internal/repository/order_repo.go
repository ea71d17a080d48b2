package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jaggery_shop/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &postgresOrderRepository{db: db, log: logger}
}

// PlaceOrder drains the user's cart into a new PENDING order. The cart read,
// total computation, order/item inserts and cart delete all run in one
// serializable transaction, so two concurrent checkouts for the same user
// cannot both convert the same cart: the loser aborts with a serialization
// failure, and a retry sees an empty cart.
//
// Item prices are snapshotted from the product's price at this moment and
// never recomputed afterwards.
func (r *postgresOrderRepository) PlaceOrder(ctx context.Context, userID, shippingAddress, paymentMethod string) (order *domain.Order, err error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		r.log.Errorf("Repo: failed to begin order transaction for user %s: %v", userID, err)
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			r.log.Error("Repo: recovered from panic, rolling back order transaction")
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			r.log.Warnf("Repo: rolling back order transaction for user %s: %v", userID, err)
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Errorf("Repo: failed to rollback order transaction: %v", rbErr)
			}
			order = nil
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			r.log.Errorf("Repo: failed to commit order transaction for user %s: %v", userID, cErr)
			err = fmt.Errorf("failed to commit order transaction: %w", cErr)
			order = nil
		}
	}()

	cartQuery := `
        SELECT c.product_id, c.quantity, p.price
        FROM cart_items c
        JOIN products p ON p.id = c.product_id
        WHERE c.user_id = $1
    `
	rows, err := tx.QueryContext(ctx, cartQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("could not read cart: %w", err)
	}

	type cartLine struct {
		productID string
		quantity  int
		price     float64
	}
	var lines []cartLine
	for rows.Next() {
		var line cartLine
		if err = rows.Scan(&line.productID, &line.quantity, &line.price); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning cart line: %w", err)
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}
	rows.Close()

	if len(lines) == 0 {
		r.log.Warnf("Repo: order placement for user %s rejected, cart is empty", userID)
		err = ErrCartEmpty
		return nil, err
	}

	var totalAmount float64
	for _, line := range lines {
		totalAmount += line.price * float64(line.quantity)
	}

	order = &domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		TotalAmount:     totalAmount,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Status:          domain.OrderPending,
	}

	orderQuery := `
        INSERT INTO orders (id, user_id, total_amount, shipping_address, payment_method, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at
    `
	err = tx.QueryRowContext(ctx, orderQuery,
		order.ID, order.UserID, order.TotalAmount,
		order.ShippingAddress, order.PaymentMethod, order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("could not create order entry: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO order_items (id, order_id, product_id, quantity, price)
        VALUES ($1, $2, $3, $4, $5)
    `)
	if err != nil {
		return nil, fmt.Errorf("could not prepare item statement: %w", err)
	}
	defer stmt.Close()

	for _, line := range lines {
		item := domain.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ProductID: line.productID,
			Quantity:  line.quantity,
			Price:     line.price,
		}
		if _, err = stmt.ExecContext(ctx, item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price); err != nil {
			return nil, fmt.Errorf("could not create order item (product %s): %w", line.productID, err)
		}
		order.Items = append(order.Items, item)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = $1", userID); err != nil {
		return nil, fmt.Errorf("could not clear cart: %w", err)
	}

	r.log.Infof("Repo: order %s created for user %s with %d items, total %.2f",
		order.ID, userID, len(order.Items), totalAmount)
	return order, nil
}

const orderColumns = "o.id, o.user_id, o.total_amount, o.shipping_address, o.payment_method, o.status, o.created_at, o.updated_at"

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	order := &domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.TotalAmount,
		&order.ShippingAddress,
		&order.PaymentMethod,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *postgresOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := fmt.Sprintf(`
        SELECT %s, u.name, u.email, COALESCE(u.phone, '')
        FROM orders o
        JOIN users u ON u.id = o.user_id
        WHERE o.id = $1
    `, orderColumns)

	order := &domain.Order{User: &domain.UserSummary{}}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.UserID, &order.TotalAmount, &order.ShippingAddress,
		&order.PaymentMethod, &order.Status, &order.CreatedAt, &order.UpdatedAt,
		&order.User.Name, &order.User.Email, &order.User.Phone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.log.Errorf("Repo: failed to get order %s: %v", id, err)
		return nil, fmt.Errorf("could not retrieve order: %w", err)
	}

	items, err := r.getItemsForOrders(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}

	return order, nil
}

// getItemsForOrders batch-loads the items for a set of orders, joined to the
// product name and image for display.
func (r *postgresOrderRepository) getItemsForOrders(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	query := `
        SELECT i.id, i.order_id, i.product_id, i.quantity, i.price,
               COALESCE(p.name, ''), COALESCE(p.image, '')
        FROM order_items i
        LEFT JOIN products p ON p.id = i.product_id
        WHERE i.order_id = ANY($1::text[])
        ORDER BY i.order_id
    `
	rows, err := r.db.QueryContext(ctx, query, pq.Array(orderIDs))
	if err != nil {
		r.log.Errorf("Repo: failed to query items for orders %v: %v", orderIDs, err)
		return nil, fmt.Errorf("could not retrieve order items: %w", err)
	}
	defer rows.Close()

	itemsMap := make(map[string][]domain.OrderItem)
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.Price, &item.ProductName, &item.ProductImage,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning order item: %w", err)
		}
		itemsMap[item.OrderID] = append(itemsMap[item.OrderID], item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return itemsMap, nil
}

func (r *postgresOrderRepository) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	orderIDs := make([]string, len(orders))
	for i := range orders {
		orderIDs[i] = orders[i].ID
	}

	itemsMap, err := r.getItemsForOrders(ctx, orderIDs)
	if err != nil {
		return err
	}

	for i := range orders {
		if items, ok := itemsMap[orders[i].ID]; ok {
			orders[i].Items = items
		} else {
			orders[i].Items = []domain.OrderItem{}
		}
	}
	return nil
}

func (r *postgresOrderRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM orders o
        WHERE o.user_id = $1
        ORDER BY o.created_at DESC
    `, orderColumns)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.log.Errorf("Repo: failed to list orders for user %s: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	r.log.Debugf("Repo: retrieved %d orders for user %s", len(orders), userID)
	return orders, nil
}

func (r *postgresOrderRepository) List(ctx context.Context, filter domain.ListOrdersFilter) ([]domain.Order, int, error) {
	page, limit := normalizePage(filter.Page, filter.Limit)

	where := ""
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = " WHERE o.status = $1"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders o"+where, args...).Scan(&total); err != nil {
		r.log.Errorf("Repo: failed to count orders: %v", err)
		return nil, 0, fmt.Errorf("could not count orders: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`
        SELECT %s, u.name, u.email, COALESCE(u.phone, '')
        FROM orders o
        JOIN users u ON u.id = o.user_id%s
        ORDER BY o.created_at DESC
        LIMIT $%d OFFSET $%d
    `, orderColumns, where, len(args)-1, len(args))

	orders, err := r.queryOrdersWithUser(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *postgresOrderRepository) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	query := fmt.Sprintf(`
        SELECT %s, u.name, u.email, COALESCE(u.phone, '')
        FROM orders o
        JOIN users u ON u.id = o.user_id
        ORDER BY o.created_at DESC
        LIMIT $1
    `, orderColumns)

	return r.queryOrdersWithUser(ctx, query, limit)
}

func (r *postgresOrderRepository) queryOrdersWithUser(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Errorf("Repo: order query failed: %v", err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order := domain.Order{User: &domain.UserSummary{}}
		err := rows.Scan(
			&order.ID, &order.UserID, &order.TotalAmount, &order.ShippingAddress,
			&order.PaymentMethod, &order.Status, &order.CreatedAt, &order.UpdatedAt,
			&order.User.Name, &order.User.Email, &order.User.Phone,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning order: %w", err)
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

func (r *postgresOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	query := `
        UPDATE orders
        SET status = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING id, user_id, total_amount, shipping_address, payment_method, status, created_at, updated_at
    `

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repo: order %s not found for status update", id)
			return nil, ErrNotFound
		}
		if pqCode(err) == pqCheckViolation {
			return nil, fmt.Errorf("invalid order status provided: %s", status)
		}
		r.log.Errorf("Repo: failed to update status for order %s: %v", id, err)
		return nil, fmt.Errorf("could not update order status: %w", err)
	}

	items, err := r.getItemsForOrders(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}

	r.log.Infof("Repo: order %s status updated to %s", id, status)
	return order, nil
}

func (r *postgresOrderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		r.log.Errorf("Repo: failed to delete order %s: %v", id, err)
		return fmt.Errorf("could not delete order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	r.log.Infof("Repo: order %s deleted", id)
	return nil
}

func (r *postgresOrderRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&total); err != nil {
		return 0, fmt.Errorf("could not count orders: %w", err)
	}
	return total, nil
}
