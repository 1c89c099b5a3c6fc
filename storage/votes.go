package storage

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mrcliffo/nfl-market-pulse/logging"
)

// DynamoVoteStorage stores one item per vote: PK is the market id, SK the vote id.
type DynamoVoteStorage struct {
	Client    *dynamodb.Client
	TableName string
}

var _ VoteStorage = (*DynamoVoteStorage)(nil)

func (s *DynamoVoteStorage) Create(ctx context.Context, vote *Vote) error {
	if !vote.Choice.Valid() {
		return ErrInvalidChoice
	}
	vote.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(vote)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to marshal vote: %v", err)
		return err
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		logging.Log.Errorf("VOTE: failed to create vote: %v", err)
		return err
	}
	return nil
}

// GetAll scans the whole table and returns votes oldest first.
func (s *DynamoVoteStorage) GetAll(ctx context.Context) ([]*Vote, error) {
	var votes []*Vote
	err := s.scan(ctx, nil, func(items []map[string]types.AttributeValue) error {
		var page []*Vote
		if err := attributevalue.UnmarshalListOfMaps(items, &page); err != nil {
			logging.Log.Errorf("VOTE: failed to unmarshal vote list: %v", err)
			return err
		}
		votes = append(votes, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(votes, func(i, j int) bool {
		if votes[i].CreatedAt.Equal(votes[j].CreatedAt) {
			return votes[i].ID < votes[j].ID
		}
		return votes[i].CreatedAt.Before(votes[j].CreatedAt)
	})
	return votes, nil
}

func (s *DynamoVoteStorage) Stats(ctx context.Context) (VoteStats, error) {
	var stats VoteStats
	err := s.scan(ctx, aws.String("CreatedAt"), func(items []map[string]types.AttributeValue) error {
		var page []struct {
			CreatedAt time.Time `dynamodbav:"CreatedAt"`
		}
		if err := attributevalue.UnmarshalListOfMaps(items, &page); err != nil {
			logging.Log.Errorf("VOTE: failed to unmarshal vote timestamps: %v", err)
			return err
		}
		for _, v := range page {
			stats.Count++
			if stats.Latest == nil || v.CreatedAt.After(*stats.Latest) {
				t := v.CreatedAt
				stats.Latest = &t
			}
		}
		return nil
	})
	if err != nil {
		return VoteStats{}, err
	}
	return stats, nil
}

func (s *DynamoVoteStorage) scan(ctx context.Context, projection *string, page func([]map[string]types.AttributeValue) error) error {
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
			TableName:            &s.TableName,
			ExclusiveStartKey:    lastEvaluatedKey,
			ProjectionExpression: projection,
		})
		if err != nil {
			logging.Log.Errorf("VOTE: scan failed: %v", err)
			return err
		}
		if err := page(out.Items); err != nil {
			return err
		}

		if out.LastEvaluatedKey == nil {
			return nil
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}
}
