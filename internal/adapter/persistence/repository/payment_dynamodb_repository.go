package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"pagamentos_api/internal/domain/entities"
	"pagamentos_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultPaymentsTableName = "payments"

// ErrPaymentIDConflict reports a create colliding with an existing id. Ids are
// uuid-generated, so this is a safety net rather than an expected path.
var ErrPaymentIDConflict = errors.New("payment id already exists")

type paymentItem struct {
	ID                string `dynamodbav:"id"`
	CPF               string `dynamodbav:"cpf"`
	Description       string `dynamodbav:"description"`
	Amount            string `dynamodbav:"amount"`
	PaymentMethod     string `dynamodbav:"payment_method"`
	Status            string `dynamodbav:"status"`
	ExternalPaymentID string `dynamodbav:"external_payment_id,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// List uses Scan with an optional filter expression; the cpf/payment_method
// filters are rarely selective enough in this dataset to justify a GSI yet.
// TODO: add a cpf GSI if list volume grows.

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	it := toPaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Payment{}, ErrPaymentIDConflict
		}
		return entities.Payment{}, err
	}
	return p, nil
}

// Update merges the supplied fields into the stored item and refreshes
// updated_at. A missing id yields a zero-value Payment, not an error.
func (r *PaymentDynamoRepository) Update(ctx context.Context, id string, fields entities.PaymentUpdate) (entities.Payment, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	sets := []string{"#updated_at = :updated_at"}
	vals := map[string]types.AttributeValue{
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	names := map[string]string{"#updated_at": "updated_at"}

	if fields.Status != nil {
		sets = append(sets, "#status = :status")
		vals[":status"] = &types.AttributeValueMemberS{Value: string(*fields.Status)}
		names["#status"] = "status"
	}
	if fields.ExternalPaymentID != nil {
		sets = append(sets, "#external_payment_id = :external_payment_id")
		vals[":external_payment_id"] = &types.AttributeValueMemberS{Value: *fields.ExternalPaymentID}
		names["#external_payment_id"] = "external_payment_id"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ExpressionAttributeValues: vals,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Payment{}, nil
		}
		return entities.Payment{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) List(ctx context.Context, filter entities.PaymentFilter) ([]entities.Payment, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}

	var exprs []string
	vals := map[string]types.AttributeValue{}
	names := map[string]string{}
	if filter.CPF != "" {
		exprs = append(exprs, "#cpf = :cpf")
		vals[":cpf"] = &types.AttributeValueMemberS{Value: filter.CPF}
		names["#cpf"] = "cpf"
	}
	if filter.PaymentMethod != "" {
		exprs = append(exprs, "#payment_method = :payment_method")
		vals[":payment_method"] = &types.AttributeValueMemberS{Value: string(filter.PaymentMethod)}
		names["#payment_method"] = "payment_method"
	}
	if len(exprs) > 0 {
		input.FilterExpression = aws.String(strings.Join(exprs, " AND "))
		input.ExpressionAttributeValues = vals
		input.ExpressionAttributeNames = names
	}

	payments := make([]entities.Payment, 0)
	for {
		out, err := r.ddb.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it paymentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			payments = append(payments, fromPaymentItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return payments, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                p.ID,
		CPF:               p.CPF,
		Description:       p.Description,
		Amount:            floatToString(p.Amount),
		PaymentMethod:     string(p.PaymentMethod),
		Status:            string(p.Status),
		ExternalPaymentID: p.ExternalPaymentID,
		CreatedAt:         p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:         p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	amount, _ := strconv.ParseFloat(it.Amount, 64)
	return entities.Payment{
		ID:                it.ID,
		CPF:               it.CPF,
		Description:       it.Description,
		Amount:            amount,
		PaymentMethod:     entities.PaymentMethod(it.PaymentMethod),
		Status:            entities.PaymentStatus(it.Status),
		ExternalPaymentID: it.ExternalPaymentID,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
}
