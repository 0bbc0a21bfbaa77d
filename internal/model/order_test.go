package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingAddressCompose(t *testing.T) {
	tests := []struct {
		name string
		addr ShippingAddress
		want string
	}{
		{
			name: "full address",
			addr: ShippingAddress{
				DoorNo:   "12A",
				Street:   "Gandhi Street",
				Landmark: "Near Temple",
				Place:    "Mylapore",
				District: "Chennai",
				State:    "Tamil Nadu",
				Pincode:  "600004",
			},
			want: "12A, Gandhi Street, Near Temple, Mylapore, Chennai, Tamil Nadu - 600004",
		},
		{
			name: "empty fields skipped",
			addr: ShippingAddress{
				DoorNo:  "5",
				Place:   "Adyar",
				Pincode: "600020",
			},
			want: "5, Adyar - 600020",
		},
		{
			name: "no pincode",
			addr: ShippingAddress{
				Street: "Main Road",
				State:  "Kerala",
			},
			want: "Main Road, Kerala",
		},
		{
			name: "pincode only",
			addr: ShippingAddress{Pincode: "600001"},
			want: " - 600001",
		},
		{
			name: "empty address",
			addr: ShippingAddress{},
			want: "",
		},
		{
			// 备用手机号不参与展示串
			name: "alt mobile excluded",
			addr: ShippingAddress{
				DoorNo:    "3",
				AltMobile: "9876543210",
				Pincode:   "600002",
			},
			want: "3 - 600002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.addr.Compose())
		})
	}
}
