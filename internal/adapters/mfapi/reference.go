package mfapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
)

func (c *Client) listLookup(ctx context.Context, cl call, labels, values []string) ([]domain.LookupItem, error) {
	cl.timeout = c.timeout
	resp, err := c.do(ctx, cl)
	if err != nil {
		return nil, err
	}
	records, err := decodeRecords(cl.endpoint, resp.body)
	if err != nil {
		return nil, err
	}
	return toLookupItems(records, labels, values), nil
}

// ListCashierBranches returns the branches the cashier may collect for.
func (c *Client) ListCashierBranches(ctx context.Context) ([]domain.LookupItem, error) {
	return c.listLookup(ctx, call{
		endpoint: "getCashierBranch",
		method:   http.MethodPost,
		path:     "/MFReceipt/getCashierBranch",
		payload:  emptyBody,
	}, labelKeys, branchValueKeys)
}

// ListLoanBranches returns the loan-owning branches.
func (c *Client) ListLoanBranches(ctx context.Context) ([]domain.LookupItem, error) {
	return c.listLookup(ctx, call{
		endpoint: "getLoanBranch",
		method:   http.MethodPost,
		path:     "/MFReceipt/getLoanBranch",
		payload:  emptyBody,
	}, labelKeys, branchValueKeys)
}

// ListBranchCenters returns the centers of a loan branch.
func (c *Client) ListBranchCenters(ctx context.Context, branchID string) ([]domain.LookupItem, error) {
	return c.listLookup(ctx, call{
		endpoint: "getBranchCenter",
		method:   http.MethodGet,
		path:     "/MFReceipt/getBranchCenter/" + url.PathEscape(branchID),
	}, labelKeys, centerValueKeys)
}

// ListCenterGroups returns the groups of a center.
func (c *Client) ListCenterGroups(ctx context.Context, centerID string) ([]domain.LookupItem, error) {
	return c.listLookup(ctx, call{
		endpoint: "getCenterGroup",
		method:   http.MethodGet,
		path:     "/MFReceipt/getCenterGroup/" + url.PathEscape(centerID),
	}, groupLabelKeys, groupValueKeys)
}
