// Package testutil provides test infrastructure shared across packages.
//
// Test doubles implement TestComponent, which extends component.Component
// with Reset, so they follow the same lifecycle as production components
// and can be started with automatic cleanup:
//
//	func TestUpload(t *testing.T) {
//	    fake := testutil.NewFakeHuiting()
//	    testutil.T(t).Setup(fake)
//	    cfg.Huiting.APIURL = fake.URL()
//	}
package testutil
